package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/athan"
	"github.com/sleepyhq/sleepy/internal/config"
	"github.com/sleepyhq/sleepy/internal/db"
	"github.com/sleepyhq/sleepy/internal/location"
	"github.com/sleepyhq/sleepy/internal/notify"
	"github.com/sleepyhq/sleepy/internal/redis"
	"github.com/sleepyhq/sleepy/internal/sleep"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(conn)

	var locations *redis.Client
	if cfg.RedisAddress != "" {
		locations = redis.New(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	}

	var publisher *notify.Publisher
	if cfg.MQTTBrokerURL != "" {
		publisher, err = notify.NewPublisher(cfg.MQTTBrokerURL, "sleepy-server", cfg.MQTTTopic)
		if err != nil {
			// reminders are best-effort; the scheduler works without them
			log.Warn().Err(err).Msg("MQTT unavailable, reminders disabled")
			publisher = nil
		}
	}

	tuning := cfg.Tuning
	timeout := time.Duration(tuning.HTTPTimeoutSeconds) * time.Second
	registry := location.DefaultRegistry()

	regional := athan.NewRegionalSource(cfg.RegionalBaseURL, timeout, registry)
	general := athan.NewGeneralSource(cfg.AladhanBaseURL, timeout,
		tuning.CalculationMethod, tuning.School, tuning.MidnightMode)
	prayers := athan.NewService(store, regional, general, registry, athan.BufferPolicy{
		PrayerMinutes:  tuning.PrayerBufferMinutes,
		SunriseMinutes: tuning.SunriseBufferMinutes,
	}, tuning.CacheDays)

	optimizer := sleep.NewOptimizer(sleep.Config{
		MinHours:          tuning.MinSleepHours,
		MaxHours:          tuning.MaxSleepHours,
		TargetHours:       tuning.TargetSleepHours,
		PivotHour:         tuning.PivotWakeHour,
		IshaBufferMinutes: tuning.IshaBufferMinutes,
	})

	r := gin.Default()
	RegisterRoutes(r, Dependencies{
		Store:     store,
		Prayers:   prayers,
		Optimizer: optimizer,
		Registry:  registry,
		Locations: locations,
		Publisher: publisher,
	})

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
