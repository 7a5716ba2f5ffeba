package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores dispatch service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Dispatch  Dispatch
	Notify    Notify
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-event consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Dispatch stores the scoring weights and offer-loop tuning knobs.
type Dispatch struct {
	DistanceWeight    float64
	LoadWeight        float64
	PerformanceWeight float64
	MaxRadiusKm       float64
	LocationFreshness time.Duration
	OfferTimeout      time.Duration
	MaxQueueLength    int
	BaseFare          float64
	PerKmFare         float64
}

// Notify stores rider notification gateway settings.
type Notify struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores public API rate limit settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings. Empty addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		Dispatch:  DefaultDispatch(),
		Notify:    DefaultNotify(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envStr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("POSTGRES_PORT", cfg.DB.Port)
	if _, convErr := strconv.Atoi(cfg.DB.Port); convErr != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT: %q", cfg.DB.Port)
	}
	cfg.DB.User = envStr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envStr("POSTGRES_DB", cfg.DB.Name)

	if v := envStr("KAFKA_BROKERS", ""); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envStr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envStr("KAFKA_ORDERS_TOPIC", cfg.Kafka.Topic)

	if cfg.Dispatch.DistanceWeight, err = envFloat("DISPATCH_DISTANCE_WEIGHT", cfg.Dispatch.DistanceWeight); err != nil {
		return nil, err
	}
	if cfg.Dispatch.LoadWeight, err = envFloat("DISPATCH_LOAD_WEIGHT", cfg.Dispatch.LoadWeight); err != nil {
		return nil, err
	}
	if cfg.Dispatch.PerformanceWeight, err = envFloat("DISPATCH_PERFORMANCE_WEIGHT", cfg.Dispatch.PerformanceWeight); err != nil {
		return nil, err
	}
	if cfg.Dispatch.MaxRadiusKm, err = envFloat("DISPATCH_MAX_RADIUS_KM", cfg.Dispatch.MaxRadiusKm); err != nil {
		return nil, err
	}
	if cfg.Dispatch.LocationFreshness, err = envDuration("DISPATCH_LOCATION_FRESHNESS", cfg.Dispatch.LocationFreshness); err != nil {
		return nil, err
	}
	if cfg.Dispatch.OfferTimeout, err = envDuration("DISPATCH_OFFER_TIMEOUT", cfg.Dispatch.OfferTimeout); err != nil {
		return nil, err
	}
	if cfg.Dispatch.MaxQueueLength, err = envInt("DISPATCH_MAX_QUEUE_LENGTH", cfg.Dispatch.MaxQueueLength); err != nil {
		return nil, err
	}

	cfg.Notify.BaseURL = envStr("NOTIFY_BASE_URL", cfg.Notify.BaseURL)
	if cfg.Notify.Timeout, err = envDuration("NOTIFY_TIMEOUT", cfg.Notify.Timeout); err != nil {
		return nil, err
	}
	if cfg.Notify.MaxAttempts, err = envInt("NOTIFY_MAX_ATTEMPTS", cfg.Notify.MaxAttempts); err != nil {
		return nil, err
	}

	cfg.RateLimit.Enabled = envStr("RATE_LIMIT_ENABLED", "") == "true"
	cfg.Pprof.Addr = envStr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envStr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envStr("PPROF_PASS", cfg.Pprof.Pass)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	d := c.Dispatch
	if d.DistanceWeight < 0 || d.LoadWeight < 0 || d.PerformanceWeight < 0 {
		return fmt.Errorf("dispatch weights must be non-negative")
	}
	if d.DistanceWeight+d.LoadWeight+d.PerformanceWeight == 0 {
		return fmt.Errorf("dispatch weights must not all be zero")
	}
	if d.MaxRadiusKm <= 0 {
		return fmt.Errorf("invalid max radius: %v", d.MaxRadiusKm)
	}
	if d.OfferTimeout <= 0 {
		return fmt.Errorf("invalid offer timeout: %v", d.OfferTimeout)
	}
	if d.MaxQueueLength <= 0 {
		return fmt.Errorf("invalid max queue length: %d", d.MaxQueueLength)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
