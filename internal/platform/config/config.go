package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Optional subsystems (redis,
// postgres, kafka) stay disabled when their setting is empty so the engine
// runs fully in-memory by default.
type Server struct {
	Addr          string
	JWTSigningKey string

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig configures the notification inbox store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the donation history store.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig configures the engine event stream.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LIFELINK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("LIFELINK_KAFKA_TOPIC")
	if topic == "" {
		topic = "lifelink.engine.events"
	}

	var brokers []string
	if raw := os.Getenv("LIFELINK_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: os.Getenv("LIFELINK_JWT_SIGNING_KEY"),
		Redis: RedisConfig{
			URL:          os.Getenv("LIFELINK_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{DSN: os.Getenv("LIFELINK_POSTGRES_DSN")},
		Kafka:    KafkaConfig{Brokers: brokers, Topic: topic},
	}
}
