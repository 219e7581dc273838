// Package config carrega a configuração do processo a partir de variáveis de ambiente,
// opcionalmente definidas em um arquivo .env.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EventBusMemory  = "memory"
	EventBusChannel = "channel"
	EventBusRedis   = "redis"
	EventBusKafka   = "kafka"
)

type Config struct {
	AppName         string
	HTTPAddr        string
	LogLevel        string
	ShutdownTimeout time.Duration
	EventBus        EventBusConfig
}

type EventBusConfig struct {
	Kind          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	ConsumerGroup string
}

// Load lê os arquivos .env informados (ou ".env" quando nenhum é passado) e depois o ambiente.
// Um arquivo ausente não é erro; valores inválidos são.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := Config{
		AppName:  getEnv("APP_NAME", "go-bus-reservation"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		EventBus: EventBusConfig{
			Kind:          strings.ToLower(getEnv("EVENT_BUS", EventBusMemory)),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "go-bus-reservation"),
		},
	}

	var err error
	if cfg.EventBus.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.EventBus.Kind {
	case EventBusMemory, EventBusChannel:
	case EventBusRedis:
		if c.EventBus.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when EVENT_BUS=redis")
		}
	case EventBusKafka:
		if len(c.EventBus.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when EVENT_BUS=kafka")
		}
	default:
		return fmt.Errorf("invalid EVENT_BUS %q: expected memory, channel, redis or kafka", c.EventBus.Kind)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s: must be positive", c.ShutdownTimeout)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, s)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
