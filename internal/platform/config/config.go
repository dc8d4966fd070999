package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration, read once at startup so main
// stays lean.
type Config struct {
	Addr string

	ClaimsDataURL      string
	FeeSchemeURL       string
	ProviderDetailsURL string
	ServiceTokenKey    string

	RedisURL    string
	PostgresURL string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroup   string

	ScheduleCacheTTL time.Duration
	MinimumPeriod    string
	EarliestClaim    string
	AuditBuffer      int
	ListenerWorkers  int
}

// FromEnv builds a Config from environment variables with development
// defaults. Collaborator URLs have no default: the engine cannot run
// without them and main fails fast when they are missing.
func FromEnv() Config {
	return Config{
		Addr:               envOr("CLAIMVET_ADDR", ":8080"),
		ClaimsDataURL:      os.Getenv("CLAIMS_DATA_URL"),
		FeeSchemeURL:       os.Getenv("FEE_SCHEME_URL"),
		ProviderDetailsURL: os.Getenv("PROVIDER_DETAILS_URL"),
		ServiceTokenKey:    envOr("SERVICE_TOKEN_KEY", "dev-secret-key-change-in-production"),
		RedisURL:           os.Getenv("REDIS_URL"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         envOr("KAFKA_TOPIC", "submission-validation-requests"),
		KafkaGroup:         envOr("KAFKA_GROUP", "claimvet"),
		ScheduleCacheTTL:   envDuration("SCHEDULE_CACHE_TTL", 15*time.Minute),
		MinimumPeriod:      os.Getenv("MINIMUM_SUBMISSION_PERIOD"),
		EarliestClaim:      os.Getenv("EARLIEST_CLAIM_DATE"),
		AuditBuffer:        envInt("AUDIT_BUFFER", 256),
		ListenerWorkers:    envInt("LISTENER_WORKERS", 4),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
