// Package config loads server configuration from the environment.
//
// A .env file is honored when present (development convenience); real
// environment variables win. All settings have workable defaults.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabasePath     string
	TeamFile         string
	HolidaysFile     string
	ReplacementsFile string
	SyncSchedule     string // 5-field cron expression
}

func Load() *Config {
	// Missing .env is fine; env vars may come from the host.
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "./rotation.db"),
		TeamFile:         getEnv("TEAM_FILE", "./data/team.json"),
		HolidaysFile:     getEnv("HOLIDAYS_FILE", "./data/holidays.json"),
		ReplacementsFile: getEnv("REPLACEMENTS_FILE", "./data/replacements.json"),
		SyncSchedule:     getEnv("SYNC_SCHEDULE", "0 6 * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
