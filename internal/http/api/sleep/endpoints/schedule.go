package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/athan"
	"github.com/sleepyhq/sleepy/internal/db"
	"github.com/sleepyhq/sleepy/internal/http/api"
	"github.com/sleepyhq/sleepy/internal/http/api/sleep/packets"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/model"
	"github.com/sleepyhq/sleepy/internal/notify"
	"github.com/sleepyhq/sleepy/internal/quotes"
	"github.com/sleepyhq/sleepy/internal/sleep"
)

const dateLayout = "2006-01-02"

type ScheduleController struct {
	store     db.Store
	prayers   *athan.Service
	optimizer *sleep.Optimizer
	registry  *location.Registry
	publisher *notify.Publisher // nil when no broker is configured
}

func NewScheduleController(store db.Store, prayers *athan.Service, optimizer *sleep.Optimizer,
	registry *location.Registry, publisher *notify.Publisher) *ScheduleController {
	return &ScheduleController{
		store:     store,
		prayers:   prayers,
		optimizer: optimizer,
		registry:  registry,
		publisher: publisher,
	}
}

func ScheduleModule(store db.Store, prayers *athan.Service, optimizer *sleep.Optimizer,
	registry *location.Registry, publisher *notify.Publisher) api.Module {
	ctl := NewScheduleController(store, prayers, optimizer, registry, publisher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/prayer-times", ctl.prayerTimes)
		c.POST("/sleep-schedule", ctl.sleepSchedule)
		c.GET("/sleep-schedule/full", ctl.fullSchedule)
		c.POST("/time-until-sleep", ctl.timeUntilSleep)
		c.GET("/history", ctl.history)
		c.GET("/cache/stats", ctl.cacheStats)
	})
}

// parseTargetDate reads the optional ?date= query, defaulting to today.
func parseTargetDate(ctx *gin.Context) (time.Time, *api.APIError) {
	raw := ctx.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date format, use YYYY-MM-DD"}
	}
	return day, nil
}

func (s *ScheduleController) prayerTimes(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	day, apiErr := parseTargetDate(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	loc := model.Location{
		City:      request.City,
		Country:   request.Country,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Timezone:  request.Timezone,
		Regional:  s.registry.Eligible(model.Location{City: request.City}),
	}

	pt, err := s.prayers.GetPrayerTimes(ctx.Request.Context(), loc, day)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "unable to obtain prayer times"}
	}
	return pt, nil
}

func (s *ScheduleController) sleepSchedule(ctx *gin.Context) (any, *api.APIError) {
	var request packets.PrayerTimesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	result := s.optimizer.Schedule(&model.PrayerTimes{
		Date:      request.Date,
		Fajr:      request.Fajr,
		Sunrise:   request.Sunrise,
		Dhuhr:     request.Dhuhr,
		Asr:       request.Asr,
		Maghrib:   request.Maghrib,
		Isha:      request.Isha,
		City:      request.City,
		Country:   request.Country,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
	})

	return packets.ScheduleResponse{
		Schedule: result.Schedule,
		Fallback: result.Outcome == sleep.OutcomeFallback,
		Reason:   result.Reason,
	}, nil
}

// fullSchedule runs the whole pipeline: GPS → location → prayer times →
// optimizer → countdown, records the night in history and optionally
// publishes a reminder.
func (s *ScheduleController) fullSchedule(ctx *gin.Context) (any, *api.APIError) {
	lat, err := strconv.ParseFloat(ctx.Query("latitude"), 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid latitude"}
	}
	lon, err := strconv.ParseFloat(ctx.Query("longitude"), 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid longitude"}
	}
	day, apiErr := parseTargetDate(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	loc := s.registry.FromGPS(lat, lon)

	pt, err := s.prayers.GetPrayerTimes(ctx.Request.Context(), loc, day)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "unable to compute schedule: prayer times unavailable"}
	}

	result := s.optimizer.Schedule(pt)

	if err := s.store.UpsertScheduleHistory(&result.Schedule); err != nil {
		log.Warn().Err(err).Str("date", result.Schedule.Date).Msg("could not record schedule history")
	}

	quote := quotes.Random()
	if ctx.Query("notify") == "true" {
		if err := s.publisher.PublishSchedule(result.Schedule, quote); err != nil {
			log.Warn().Err(err).Msg("could not publish sleep reminder")
		}
	}

	response := packets.FullScheduleResponse{
		Location:    loc,
		PrayerTimes: *pt,
		Schedule:    result.Schedule,
		Fallback:    result.Outcome == sleep.OutcomeFallback,
		Reason:      result.Reason,
		Quote:       quote,
	}
	if cd, ok := sleep.Countdown(result.Schedule, time.Now()); ok {
		response.TimeUntilSleep = &packets.CountdownResponse{
			Hours:    cd.Hours,
			Minutes:  cd.Minutes,
			HasHours: cd.HasHours,
		}
	}
	return response, nil
}

func (s *ScheduleController) timeUntilSleep(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CountdownRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	schedule := model.SleepSchedule{Date: request.Date, SleepStart: request.SleepStart}
	cd, ok := sleep.Countdown(schedule, time.Now())
	if !ok {
		return gin.H{"time_until_sleep": nil, "sleep_time": request.SleepStart}, nil
	}
	return gin.H{
		"time_until_sleep": packets.CountdownResponse{Hours: cd.Hours, Minutes: cd.Minutes, HasHours: cd.HasHours},
		"sleep_time":       request.SleepStart,
	}, nil
}

func (s *ScheduleController) history(ctx *gin.Context) (any, *api.APIError) {
	from := ctx.Query("from")
	to := ctx.Query("to")
	if from == "" || to == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "from and to are required (YYYY-MM-DD)"}
	}
	if _, err := time.Parse(dateLayout, from); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid from date"}
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid to date"}
	}

	list, err := s.store.ListScheduleHistory(from, to)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list schedule history"}
	}
	return list, nil
}

func (s *ScheduleController) cacheStats(ctx *gin.Context) (any, *api.APIError) {
	n, err := s.prayers.CacheSize()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not read cache stats"}
	}
	return packets.CacheStatsResponse{Entries: n}, nil
}
