package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gagankishoreint-glitch/credai/pkg/kafka"
	"github.com/gagankishoreint-glitch/credai/pkg/postgres"
)

// Storage backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all configuration for the scoring service.
type Config struct {
	// gRPC server port
	GRPCPort int
	// GRPCReflection registers the reflection service.
	GRPCReflection bool
	// HTTP API, metrics and health port
	HTTPPort int
	// Service name for observability
	ServiceName string
	// Store selects the application repository: postgres or memory.
	Store string
	// BatchWorkers bounds concurrent assessments in a batch.
	BatchWorkers int
	// RateLimitRPS is the per-client HTTP API rate. Zero disables limiting.
	RateLimitRPS int

	DB        postgres.Config
	Kafka     KafkaConfig
	Redis     RedisConfig
	JWT       JWTConfig
	TLS       TLSConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

// KafkaConfig holds Kafka connection settings. An empty broker list
// disables event publishing and the scoring-request consumer.
type KafkaConfig struct {
	kafka.Config
	// RequestTopic is consumed for asynchronous scoring requests. Empty
	// disables the consumer.
	RequestTopic string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// RedisConfig holds the score cache settings. An empty address falls back
// to an in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// JWTConfig selects the token key material.
type JWTConfig struct {
	Secret         string
	PublicKeyPath  string
	PrivateKeyPath string
	Issuer         string
	Expiration     time.Duration
}

// TLSConfig enables TLS on the gRPC server when both files are set.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether TLS is configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// TelemetryConfig holds tracing settings.
type TelemetryConfig struct {
	OTLPEndpoint string
	Insecure     bool
	SampleRatio  float64
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		ServiceName:    getEnv("SERVICE_NAME", "credai"),
		Store:          getEnv("STORE", StorePostgres),
		BatchWorkers:   getEnvInt("BATCH_WORKERS", 8),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 50),
		DB: postgres.Config{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "credai"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "credai"),
			SSLMode:         getEnv("DB_SSLMODE", "require"),
			ApplicationName: getEnv("SERVICE_NAME", "credai"),
			MaxConns:        int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Kafka: KafkaConfig{
			Config: kafka.Config{
				Brokers:       getEnvList("KAFKA_BROKERS"),
				ClientID:      getEnv("KAFKA_CLIENT_ID", "credai"),
				ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "credai-scoring"),
				SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
				SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-512"),
				SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
				SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
				TLS:           getEnvBool("KAFKA_TLS", false),
			},
			RequestTopic: getEnv("KAFKA_REQUEST_TOPIC", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
			Issuer:         getEnv("JWT_ISSUER", "credai"),
			Expiration:     getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}
}

// Validate checks required configuration values.
func (c Config) Validate() error {
	var errs []error

	switch c.Store {
	case StorePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store))
	}

	if c.JWT.Secret == "" && c.JWT.PublicKeyPath == "" && c.JWT.PrivateKeyPath == "" {
		errs = append(errs, errors.New("one of JWT_SECRET, JWT_PUBLIC_KEY_PATH or JWT_PRIVATE_KEY_PATH is required"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Kafka.RequestTopic != "" && !c.Kafka.Enabled() {
		errs = append(errs, errors.New("KAFKA_REQUEST_TOPIC requires KAFKA_BROKERS"))
	}
	if c.BatchWorkers <= 0 {
		errs = append(errs, errors.New("BATCH_WORKERS must be positive"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}

	return errors.Join(errs...)
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
