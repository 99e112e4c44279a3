package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/jurnal-backend/internal/ai"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

type Config struct {
	MongoURI       string
	PostgresURI    string
	RedisURI       string // empty disables Redis; sessions and the recap cache fall back to memory/none
	StorageBackend string
	Port           string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Host           string   // Raw HOST env (e.g. https://api.jurnal.app)
	AllowedHost    string   // Hostname only for strict host check (production only)
	Environment    string   // ENV: production, development, etc.
	TrustProxy     bool     // use X-Forwarded-For for client IPs in logs
	LogLevel       string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	AITimeout     time.Duration
	TimeZone      string // IANA name used for weekly windows and daily buckets

	errs []error
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = bareHost(host)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	c := &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/jurnal")),
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/jurnal?sslmode=disable"),
		RedisURI:       strings.TrimSpace(os.Getenv("REDIS_URI")),
		StorageBackend: strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", BackendPostgres))),
		Host:           host,
		AllowedHost:    allowedHost,
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:    getEnv("OPENAI_MODEL", ai.DefaultModel),
		OpenAIBaseURL:  strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		TimeZone:       getEnv("JOURNAL_TIMEZONE", "UTC"),
	}
	c.TrustProxy = c.getEnvBool("TRUST_PROXY", false)
	c.AITimeout = c.getEnvDuration("AI_TIMEOUT", ai.DefaultTimeout)
	return c
}

// Validate reports the first configuration problem found by Load or in the values themselves.
func (c *Config) Validate() error {
	if len(c.errs) > 0 {
		return c.errs[0]
	}
	switch c.StorageBackend {
	case BackendPostgres, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND %q is not one of postgres, mongo, memory", c.StorageBackend)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got %s", c.AITimeout)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("JOURNAL_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location is the journal time zone. Call Validate first; an unknown zone falls back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AI returns the settings for the text generation client.
func (c *Config) AI() ai.Config {
	return ai.Config{
		APIKey:  c.OpenAIAPIKey,
		Model:   c.OpenAIModel,
		BaseURL: c.OpenAIBaseURL,
		Timeout: c.AITimeout,
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// bareHost strips scheme, path and port: https://api.jurnal.app:443/x -> api.jurnal.app
func bareHost(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func (c *Config) getEnvBool(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return b
}
