package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/habitquest/habit-quest-api/internal/constants"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	RegenerationCronSpec  string
	RegenerationBatchSize int
	RegenerationPause     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "habitquest"),
		DBPassword:    getEnv("DB_PASSWORD", "habitquest"),
		DBName:        getEnv("DB_NAME", "habit_quest"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),

		RegenerationCronSpec:  getEnv("REGEN_CRON_SPEC", constants.RegenerationCronSpec),
		RegenerationBatchSize: getEnvInt("REGEN_BATCH_SIZE", constants.RegenerationBatchSize),
		RegenerationPause:     getEnvDuration("REGEN_BATCH_PAUSE", constants.RegenerationPause),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
