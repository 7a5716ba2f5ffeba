package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch_db",
}

var defaultKafka = Kafka{
	GroupID: "rider-dispatch",
	Topic:   "order-status-events",
}

var defaultDispatch = Dispatch{
	DistanceWeight:    0.5,
	LoadWeight:        0.3,
	PerformanceWeight: 0.2,
	MaxRadiusKm:       10,
	LocationFreshness: 5 * time.Minute,
	OfferTimeout:      30 * time.Second,
	MaxQueueLength:    10,
	BaseFare:          2.0,
	PerKmFare:         0.8,
}

var defaultNotify = Notify{
	Timeout:     2 * time.Second,
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    500 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       50,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultDispatch returns the default dispatch tuning.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultNotify returns the default notification gateway settings.
func DefaultNotify() Notify {
	return defaultNotify
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof {
	return Pprof{}
}
