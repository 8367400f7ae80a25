package cfg

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Enabled reports whether sessions go to Redis. Without REDIS_HOST they are
// kept in process memory.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type BookingAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv            string
	AppPort           string
	NodeID            int64
	DisplayCurrency   string
	SessionTTLMinutes int
	AllowedOrigins    []string
	Redis             RedisConfig
	BookingAPI        BookingAPIConfig
	Observability     ObservabilityConfig
}

// Load reads .env when present, then the process environment. Every missing
// or malformed variable is reported at once.
func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	redisHost := os.Getenv("REDIS_HOST")
	var redisPort, redisPassword string
	if redisHost != "" {
		redisPort = mustEnv("REDIS_PORT", &errs)
		redisPassword = os.Getenv("REDIS_PASSWORD")
	}

	bookingAPIBaseURL := mustEnv("BOOKING_API_BASE_URL", &errs)
	bookingAPITimeout := mustInt("BOOKING_API_TIMEOUT_SECONDS", &errs)
	sessionTTLMinutes := mustInt("SESSION_TTL_MINUTES", &errs)
	nodeID := mustInt("NODE_ID", &errs)

	currency := os.Getenv("DISPLAY_CURRENCY")
	if currency == "" {
		currency = "EGP"
	}

	allowedOrigins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		allowedOrigins = splitList(raw)
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "tripbook"
	}
	otlpEndpoint := mustEnv("OTEL_EXPORTER_OTLP_ENDPOINT", &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:            appEnv,
		AppPort:           appPort,
		NodeID:            int64(nodeID),
		DisplayCurrency:   currency,
		SessionTTLMinutes: sessionTTLMinutes,
		AllowedOrigins:    allowedOrigins,
		Redis: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		BookingAPI: BookingAPIConfig{
			BaseURL:        bookingAPIBaseURL,
			TimeoutSeconds: bookingAPITimeout,
		},
		Observability: ObservabilityConfig{
			ServiceName:  serviceName,
			Environment:  appEnv,
			OTLPEndpoint: otlpEndpoint,
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func mustInt(key string, errs *[]error) int {
	raw := mustEnv(key, errs)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
