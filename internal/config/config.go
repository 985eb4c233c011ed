package config

import (
	"fmt"
	"os"
)

// Config holds environment-based settings
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	ServerAddress  string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	MQTTTopic     string

	AladhanBaseURL  string
	RegionalBaseURL string

	Tuning Tuning
}

// Tuning is the fixed scheduling configuration. None of it is runtime-editable;
// changing a value is a deploy.
type Tuning struct {
	// Aladhan request parameters.
	CalculationMethod int // 3 = Muslim World League
	School            int // 1 = Hanafi
	MidnightMode      int // 0 = standard

	// Safety buffers, minutes. Prayers shift later, sunrise shifts earlier.
	PrayerBufferMinutes  int
	SunriseBufferMinutes int

	// Sleep window policy.
	TargetSleepHours  float64
	MinSleepHours     float64
	MaxSleepHours     float64
	PivotWakeHour     int
	IshaBufferMinutes int

	CacheDays          int
	HTTPTimeoutSeconds int
}

// DefaultTuning mirrors the shipped scheduling policy.
func DefaultTuning() Tuning {
	return Tuning{
		CalculationMethod:    3,
		School:               1,
		MidnightMode:         0,
		PrayerBufferMinutes:  15,
		SunriseBufferMinutes: 15,
		TargetSleepHours:     7.0,
		MinSleepHours:        6.0,
		MaxSleepHours:        7.5,
		PivotWakeHour:        4,
		IshaBufferMinutes:    30,
		CacheDays:            30,
		HTTPTimeoutSeconds:   15,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}
	migrations := os.Getenv("MIGRATIONS_PATH")
	if migrations == "" {
		migrations = "./migrations"
	}
	aladhan := os.Getenv("ALADHAN_BASE_URL")
	if aladhan == "" {
		aladhan = "http://api.aladhan.com/v1"
	}
	regional := os.Getenv("REGIONAL_BASE_URL")
	if regional == "" {
		regional = "https://namozvaqti.uz/api"
	}
	topic := os.Getenv("MQTT_TOPIC")
	if topic == "" {
		topic = "sleepy/reminders"
	}
	return &Config{
		DatabaseURL:     dbURL,
		MigrationsPath:  migrations,
		ServerAddress:   addr,
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisUsername:   os.Getenv("REDIS_USERNAME"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTTopic:       topic,
		AladhanBaseURL:  aladhan,
		RegionalBaseURL: regional,
		Tuning:          DefaultTuning(),
	}, nil
}
