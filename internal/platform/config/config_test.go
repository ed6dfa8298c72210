package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "08:00", cfg.Policy.CallWindowStart)
	assert.Equal(t, "21:00", cfg.Policy.CallWindowEnd)
	assert.Equal(t, 7, cfg.Policy.AttemptCap)
	assert.Equal(t, 7*24*time.Hour, cfg.Policy.AttemptWindow)
	assert.Equal(t, 7*24*time.Hour, cfg.Policy.CooldownWindow)
	assert.Equal(t, 5*24*time.Hour, cfg.Policy.ValidationNoticeDue)
	assert.Equal(t, 60*24*time.Hour, cfg.Policy.SMSConsentReconfirmIn)
	assert.Equal(t, 300*time.Millisecond, cfg.FactResolveTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.AuditWriteTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CONTACTGATE_ADDR", ":9999")
	t.Setenv("ATTEMPT_CAP", "3")
	t.Setenv("CALL_WINDOW_END", "20:00")
	t.Setenv("FACT_RESOLVE_TIMEOUT", "1s")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 3, cfg.Policy.AttemptCap)
	assert.Equal(t, "20:00", cfg.Policy.CallWindowEnd)
	assert.Equal(t, time.Second, cfg.FactResolveTimeout)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("ATTEMPT_CAP", "many")
	t.Setenv("AUDIT_WRITE_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 7, cfg.Policy.AttemptCap)
	assert.Equal(t, 500*time.Millisecond, cfg.AuditWriteTimeout)
}
