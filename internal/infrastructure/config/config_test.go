package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Load()
	cfg.DB.Password = "secret"
	cfg.JWT.Secret = "jwt-secret"
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	cfg := Load()

	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "loan.events", cfg.Kafka.Topic)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Minute, cfg.Redis.ScheduleTTL)
	assert.True(t, decimal.NewFromInt(5000).Equal(cfg.Refinance.MinLifetimeSavings))
	assert.Equal(t, 36, cfg.Refinance.MaxBreakEvenMonths)
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, ":8080", cfg.HTTPAddr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("SCHEDULE_CACHE_TTL", "90s")
	t.Setenv("REFINANCE_MIN_LIFETIME_SAVINGS", "2500.50")
	t.Setenv("REFINANCE_MAX_BREAK_EVEN_MONTHS", "24")

	cfg := Load()

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.TLS)
	assert.Equal(t, 90*time.Second, cfg.Redis.ScheduleTTL)
	assert.Equal(t, "2500.5", cfg.Refinance.MinLifetimeSavings.String())
	assert.Equal(t, 24, cfg.Refinance.MaxBreakEvenMonths)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("SCHEDULE_CACHE_TTL", "soon")
	t.Setenv("REFINANCE_MIN_LIFETIME_SAVINGS", "lots")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 10*time.Minute, cfg.Redis.ScheduleTTL)
	assert.True(t, decimal.NewFromInt(5000).Equal(cfg.Refinance.MinLifetimeSavings))
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("lists every problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.DB.Password = ""
		cfg.JWT.Secret = ""
		cfg.HTTPPort = 70000
		cfg.Refinance.MaxBreakEvenMonths = 0
		cfg.LogFormat = "xml"

		err := cfg.Validate()

		require.Error(t, err)
		for _, want := range []string{
			"DB_PASSWORD",
			"JWT_SECRET",
			"HTTP_PORT 70000",
			"REFINANCE_MAX_BREAK_EVEN_MONTHS",
			`LOG_FORMAT "xml"`,
		} {
			assert.Contains(t, err.Error(), want)
		}
	})

	t.Run("tls files come in pairs", func(t *testing.T) {
		cfg := validConfig()
		cfg.TLS.CertFile = "cert.pem"

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TLS_CERT_FILE")
	})

	t.Run("same ports", func(t *testing.T) {
		cfg := validConfig()
		cfg.HTTPPort = cfg.GRPCPort

		assert.Error(t, cfg.Validate())
	})
}
