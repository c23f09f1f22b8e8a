package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.EventCacheTTL)
	assert.Equal(t, "nscc.audit", cfg.AuditTopic)
	assert.False(t, cfg.EnforceFieldConstraints)
	assert.False(t, cfg.ReportAllMissing)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NSCC_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("REGISTRATION_ENFORCE_REGEX", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.EnforceFieldConstraints)
}
