package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// NOTE: Default port is 8111 to match the frontend dev proxy
const defaultPort = "8111"

var defaultAllowedOrigins = []string{
	"http://localhost:1234",
	"http://127.0.0.1:1234",
}

type Config struct {
	// HTTP Server
	Port               string
	CORSAllowedOrigins []string

	// Storage
	UseMemoryStore bool
	ProjectID      string
	SeedDemoData   bool

	// Analysis windows
	HistoryMonths  int
	ForecastMonths int

	// Observability
	MetricsEnabled bool
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", defaultPort),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),

		UseMemoryStore: getEnvBool("USE_MEMORY_STORE", false) || os.Getenv("ENV") == "local",
		ProjectID:      getEnv("GOOGLE_CLOUD_PROJECT", ""),
		SeedDemoData:   getEnvBool("SEED_DEMO_DATA", false),

		HistoryMonths:  getEnvInt("HISTORY_MONTHS", 6),
		ForecastMonths: getEnvInt("FORECAST_MONTHS", 3),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// Validate validates the configuration and returns an error listing every problem
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !c.UseMemoryStore && c.ProjectID == "" {
		errors = append(errors, "GOOGLE_CLOUD_PROJECT is required when not using the memory store")
	}

	if c.HistoryMonths < 1 || c.HistoryMonths > 24 {
		errors = append(errors, fmt.Sprintf("invalid history months %d: must be between 1 and 24", c.HistoryMonths))
	}
	if c.ForecastMonths < 1 || c.ForecastMonths > 24 {
		errors = append(errors, fmt.Sprintf("invalid forecast months %d: must be between 1 and 24", c.ForecastMonths))
	}

	for _, origin := range c.CORSAllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errors = append(errors, fmt.Sprintf("invalid CORS origin '%s': must start with http:// or https://", origin))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
