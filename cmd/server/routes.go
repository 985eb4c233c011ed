package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sleepyhq/sleepy/internal/athan"
	"github.com/sleepyhq/sleepy/internal/db"
	"github.com/sleepyhq/sleepy/internal/http/api"
	"github.com/sleepyhq/sleepy/internal/http/api/sleep/endpoints"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/notify"
	"github.com/sleepyhq/sleepy/internal/redis"
	"github.com/sleepyhq/sleepy/internal/sleep"
)

// Dependencies carries the wired pipeline into route registration.
type Dependencies struct {
	Store     db.Store
	Prayers   *athan.Service
	Optimizer *sleep.Optimizer
	Registry  *location.Registry
	Locations *redis.Client
	Publisher *notify.Publisher
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	// CORS is wide open for the mobile client
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: false,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Sleepy API is running",
		})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		endpoints.LocationModule(deps.Registry, deps.Locations),
		endpoints.ScheduleModule(deps.Store, deps.Prayers, deps.Optimizer, deps.Registry, deps.Publisher),
		endpoints.QuotesModule(),
	)
}
