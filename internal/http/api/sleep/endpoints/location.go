package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/http/api"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/redis"
)

type LocationController struct {
	registry *location.Registry
	store    *redis.Client // nil when no Redis is configured
}

func NewLocationController(registry *location.Registry, store *redis.Client) *LocationController {
	return &LocationController{registry: registry, store: store}
}

func LocationModule(registry *location.Registry, store *redis.Client) api.Module {
	ctl := NewLocationController(registry, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/location/gps", ctl.fromGPS)
		c.GET("/location/city/:name", ctl.byCity)
		c.GET("/location/last", ctl.lastKnown)
	})
}

func (l *LocationController) fromGPS(ctx *gin.Context) (any, *api.APIError) {
	lat, err := strconv.ParseFloat(ctx.Query("latitude"), 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid latitude"}
	}
	lon, err := strconv.ParseFloat(ctx.Query("longitude"), 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid longitude"}
	}

	loc := l.registry.FromGPS(lat, lon)

	if l.store != nil {
		if err := l.store.SaveLastLocation(ctx.Request.Context(), loc); err != nil {
			log.Warn().Err(err).Msg("could not persist last location")
		}
	}
	return loc, nil
}

func (l *LocationController) byCity(ctx *gin.Context) (any, *api.APIError) {
	loc, ok := l.registry.ByName(ctx.Param("name"))
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "city not found"}
	}
	return loc, nil
}

func (l *LocationController) lastKnown(ctx *gin.Context) (any, *api.APIError) {
	if l.store == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no location history available"}
	}
	loc, err := l.store.LastLocation(ctx.Request.Context())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not read location history"}
	}
	if loc == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no location history found"}
	}
	return loc, nil
}
