package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	ScheduleTTL time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

type JWTConfig struct {
	Secret       string
	PublicKeyPEM string
	Issuer       string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type RefinanceConfig struct {
	MinLifetimeSavings decimal.Decimal
	MaxBreakEvenMonths int
}

type Config struct {
	GRPCPort     int
	HTTPPort     int
	DB           DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	JWT          JWTConfig
	TLS          TLSConfig
	Refinance    RefinanceConfig
	ServiceName  string
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loans"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loans"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			ScheduleTTL: getEnvDuration("SCHEDULE_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			Topic:         getEnv("KAFKA_TOPIC", "loan.events"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "loand"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", ""),
			PublicKeyPEM: getEnv("JWT_PUBLIC_KEY", ""),
			Issuer:       getEnv("JWT_ISSUER", "finflow"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Refinance: RefinanceConfig{
			MinLifetimeSavings: getEnvDecimal("REFINANCE_MIN_LIFETIME_SAVINGS", decimal.NewFromInt(5000)),
			MaxBreakEvenMonths: getEnvInt("REFINANCE_MAX_BREAK_EVEN_MONTHS", 36),
		},
		ServiceName:  getEnv("SERVICE_NAME", "loan-service"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	for name, port := range map[string]int{"GRPC_PORT": c.GRPCPort, "HTTP_PORT": c.HTTPPort, "DB_PORT": c.DB.Port} {
		if port < 1 || port > 65535 {
			problems = append(problems, fmt.Sprintf("%s %d: must be between 1 and 65535", name, port))
		}
	}
	if c.GRPCPort == c.HTTPPort {
		problems = append(problems, "GRPC_PORT and HTTP_PORT must differ")
	}
	if c.DB.Password == "" {
		problems = append(problems, "DB_PASSWORD is required")
	}
	if c.DB.MaxConns < 1 {
		problems = append(problems, fmt.Sprintf("DB_MAX_CONNS %d: must be positive", c.DB.MaxConns))
	}
	if c.Redis.Addr == "" {
		problems = append(problems, "REDIS_ADDR is required")
	}
	if c.Redis.ScheduleTTL <= 0 {
		problems = append(problems, "SCHEDULE_CACHE_TTL must be positive")
	}
	if len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "KAFKA_BROKERS is required")
	}
	if c.Kafka.Topic == "" {
		problems = append(problems, "KAFKA_TOPIC is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "" {
		problems = append(problems, "one of JWT_SECRET or JWT_PUBLIC_KEY is required")
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		problems = append(problems, "TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.Refinance.MinLifetimeSavings.IsNegative() {
		problems = append(problems, "REFINANCE_MIN_LIFETIME_SAVINGS must not be negative")
	}
	if c.Refinance.MaxBreakEvenMonths < 1 {
		problems = append(problems, "REFINANCE_MAX_BREAK_EVEN_MONTHS must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text", "pretty":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q: must be json, text or pretty", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
