package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"phonicsquest/internal/pedagogy"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // sqlite, postgres, mysql or memory
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	Debug          bool

	// Domain events; publishing is disabled when RabbitMQURI is empty
	RabbitMQURI    string
	EventsExchange string

	// Session report email; disabled when SESFromEmail is empty
	AWSRegion     string
	SESFromEmail  string
	SESFromName   string
	ReportToEmail string

	RateLimitPerMinute int

	MasteryMinAccuracy      float64
	MasteryMinAttempts      int
	MasteryMinSessions      int
	MasteryMaxAvgResponseMs float64
	ReviewBaseIntervalDays  int
}

// Load reads configuration from a .env file, if present, and environment variables
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   strings.ToLower(getEnv("DATABASE_TYPE", "sqlite")),
		DatabasePath:   getEnv("DB_PATH", "./phonicsquest.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		Debug:          getEnvBool("DEBUG", false),

		RabbitMQURI:    getEnv("RABBITMQ_URI", ""),
		EventsExchange: getEnv("EVENTS_EXCHANGE", "practice.events"),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:  getEnv("SES_FROM_EMAIL", ""),
		SESFromName:   getEnv("SES_FROM_NAME", "PhonicsQuest"),
		ReportToEmail: getEnv("REPORT_TO_EMAIL", ""),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		MasteryMinAccuracy:      getEnvFloat("MASTERY_MIN_ACCURACY", pedagogy.DefaultMasteryRule.MinAccuracy),
		MasteryMinAttempts:      getEnvInt("MASTERY_MIN_ATTEMPTS", pedagogy.DefaultMasteryRule.MinAttempts),
		MasteryMinSessions:      getEnvInt("MASTERY_MIN_SESSIONS", pedagogy.DefaultMasteryRule.MinSessions),
		MasteryMaxAvgResponseMs: getEnvFloat("MASTERY_MAX_AVG_RESPONSE_MS", 0),
		ReviewBaseIntervalDays:  getEnvInt("REVIEW_BASE_INTERVAL_DAYS", 1),
	}
}

// MasteryRule returns the configured mastery thresholds
func (c *Config) MasteryRule() pedagogy.MasteryRule {
	return pedagogy.MasteryRule{
		MinAccuracy:          c.MasteryMinAccuracy,
		MinAttempts:          c.MasteryMinAttempts,
		MinSessions:          c.MasteryMinSessions,
		MaxAvgResponseTimeMs: c.MasteryMaxAvgResponseMs,
	}
}

// UsesMemoryStore reports whether sessions and progress are kept in memory only
func (c *Config) UsesMemoryStore() bool {
	return c.DatabaseType == "memory"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
