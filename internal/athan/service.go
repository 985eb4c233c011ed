package athan

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/db"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/model"
)

// Service is the acquisition pipeline: cache lookup, source selection with a
// single regional→general fallback, safety buffering, cache write plus an
// opportunistic eviction sweep, and stale-cache degradation when every
// upstream fails.
type Service struct {
	store     db.Store
	regional  Source
	general   Source
	regions   *location.Registry
	buffer    BufferPolicy
	cacheDays int
}

func NewService(store db.Store, regional, general Source, regions *location.Registry, buffer BufferPolicy, cacheDays int) *Service {
	return &Service{
		store:     store,
		regional:  regional,
		general:   general,
		regions:   regions,
		buffer:    buffer,
		cacheDays: cacheDays,
	}
}

// GetPrayerTimes returns the buffered timetable for the location and day.
// Cached rows are returned as-is (they were buffered before being written).
func (s *Service) GetPrayerTimes(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error) {
	date := day.Format("2006-01-02")

	cached, err := s.store.GetPrayerTimes(loc.City, date)
	if err == nil && cached != nil {
		return cached, nil
	}

	fetched, fetchErr := s.fetch(ctx, loc, day)
	if fetchErr == nil {
		buffered, bufErr := s.buffer.Apply(fetched)
		if bufErr == nil {
			s.persist(buffered)
			return buffered, nil
		}
		fetchErr = bufErr
	}

	// A stale row is preferred over no answer at all.
	stale, staleErr := s.store.GetPrayerTimes(loc.City, date)
	if staleErr == nil && stale != nil {
		log.Warn().Err(fetchErr).Str("city", loc.City).Str("date", date).
			Msg("all prayer time sources failed, serving cached entry")
		return stale, nil
	}

	return nil, fmt.Errorf("unable to obtain prayer times for %s on %s: %w", loc.City, date, fetchErr)
}

// fetch applies the selection rule: regional first for eligible locations with
// exactly one fallback to the general source; everyone else goes straight to
// the general source. No retries beyond that.
func (s *Service) fetch(ctx context.Context, loc model.Location, day time.Time) (*model.PrayerTimes, error) {
	if s.regions.Eligible(loc) {
		pt, err := s.regional.Fetch(ctx, loc, day)
		if err == nil {
			return pt, nil
		}
		log.Warn().Err(err).Str("city", loc.City).Str("source", s.regional.Name()).
			Msg("regional source failed, falling back to general source")
	}
	pt, err := s.general.Fetch(ctx, loc, day)
	if err != nil {
		log.Error().Err(err).Str("city", loc.City).Str("source", s.general.Name()).
			Msg("general source failed")
		return nil, err
	}
	return pt, nil
}

// persist writes the fresh row and sweeps entries past the cache lifetime.
// Both are best-effort: the caller already holds a good timetable.
func (s *Service) persist(pt *model.PrayerTimes) {
	if err := s.store.UpsertPrayerTimes(pt); err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -s.cacheDays)
	if n, err := s.store.EvictPrayerTimesBefore(cutoff); err == nil && n > 0 {
		log.Info().Int64("evicted", n).Msg("swept expired prayer time cache entries")
	}
}

// CacheSize reports the number of cached rows, for diagnostics only.
func (s *Service) CacheSize() (int, error) {
	return s.store.CountPrayerTimes()
}
