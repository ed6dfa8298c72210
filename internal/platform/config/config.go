package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures every knob the gate needs. Evaluation reads policy values
// from here rather than ambient globals so a decision is reproducible from
// its inputs alone.
type Config struct {
	Addr string

	PostgresURL string
	RedisURL    string

	KafkaBrokers    []string
	ObligationTopic string

	DNCRegistryURL string
	DNCCacheTTL    time.Duration

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	Policy Policy

	// Bounded deadlines for the two suspension points. On expiry the caller
	// receives a fail-closed decision, never a hang.
	FactResolveTimeout time.Duration
	AuditWriteTimeout  time.Duration
}

// Policy holds the regulatory parameters consulted by the rule catalog and
// the obligation scheduler.
type Policy struct {
	// Permitted local calling window at the consumer's location.
	CallWindowStart string // "HH:MM", default 08:00
	CallWindowEnd   string // "HH:MM", default 21:00

	// Attempt frequency presumption: more than AttemptCap outbound attempts
	// within AttemptWindow blocks further attempts.
	AttemptCap    int
	AttemptWindow time.Duration

	// A connected outbound conversation within CooldownWindow blocks voice.
	CooldownWindow time.Duration

	ValidationNoticeDue   time.Duration // default 5 calendar days
	SMSConsentReconfirmIn time.Duration // default 60 days
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr: getEnv("CONTACTGATE_ADDR", ":8080"),

		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		KafkaBrokers:    splitCSV(os.Getenv("KAFKA_BROKERS")),
		ObligationTopic: getEnv("OBLIGATION_TOPIC", "compliance.obligations"),

		DNCRegistryURL: os.Getenv("DNC_REGISTRY_URL"),
		DNCCacheTTL:    getEnvDuration("DNC_CACHE_TTL", 6*time.Hour),

		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getEnv("JWT_ISSUER", "contactgate"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "contactgate"),

		Policy: Policy{
			CallWindowStart:       getEnv("CALL_WINDOW_START", "08:00"),
			CallWindowEnd:         getEnv("CALL_WINDOW_END", "21:00"),
			AttemptCap:            getEnvInt("ATTEMPT_CAP", 7),
			AttemptWindow:         getEnvDuration("ATTEMPT_WINDOW", 7*24*time.Hour),
			CooldownWindow:        getEnvDuration("COOLDOWN_WINDOW", 7*24*time.Hour),
			ValidationNoticeDue:   getEnvDuration("VALIDATION_NOTICE_DUE", 5*24*time.Hour),
			SMSConsentReconfirmIn: getEnvDuration("SMS_CONSENT_RECONFIRM_IN", 60*24*time.Hour),
		},

		FactResolveTimeout: getEnvDuration("FACT_RESOLVE_TIMEOUT", 300*time.Millisecond),
		AuditWriteTimeout:  getEnvDuration("AUDIT_WRITE_TIMEOUT", 500*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
