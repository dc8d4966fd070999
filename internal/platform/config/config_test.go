package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "submission-validation-requests", cfg.KafkaTopic)
	assert.Equal(t, "claimvet", cfg.KafkaGroup)
	assert.Equal(t, 15*time.Minute, cfg.ScheduleCacheTTL)
	assert.Equal(t, 256, cfg.AuditBuffer)
	assert.Equal(t, 4, cfg.ListenerWorkers)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CLAIMVET_ADDR", ":9999")
	t.Setenv("CLAIMS_DATA_URL", "http://claims.local")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("SCHEDULE_CACHE_TTL", "30m")
	t.Setenv("AUDIT_BUFFER", "1024")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "http://claims.local", cfg.ClaimsDataURL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.ScheduleCacheTTL)
	assert.Equal(t, 1024, cfg.AuditBuffer)
}

func TestFromEnv_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SCHEDULE_CACHE_TTL", "soon")
	t.Setenv("AUDIT_BUFFER", "lots")

	cfg := FromEnv()

	assert.Equal(t, 15*time.Minute, cfg.ScheduleCacheTTL)
	assert.Equal(t, 256, cfg.AuditBuffer)
}
