package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const OrdersTopic = "orders"

type Config struct {
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Auth    AuthConfig
	Orders  OrdersConfig
	Stats   StatsConfig
	Gateway GatewayConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

type AuthConfig struct {
	JWTSecret string
}

type OrdersConfig struct {
	PublicBaseURL  string
	NewOrderWindow time.Duration
	AckTTL         time.Duration
	TableLockTTL   time.Duration
	PlaceRateLimit string
	// ClientIPHeader names the header carrying the customer address set by
	// api-gateway; empty keys the rate limit on the connection address.
	ClientIPHeader string
	RequestTimeout time.Duration
}

type GatewayConfig struct {
	OrderSvcURL     string
	AnalyticsSvcURL string
}

type StatsConfig struct {
	CacheTTL time.Duration
	Timezone string
	LiveTTL  time.Duration
}

// Location resolves Timezone, falling back to the process zone when it is unknown.
func (c StatsConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown STATS_TIMEZONE %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "tableorder"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_TOPIC", OrdersTopic),
			GroupID: getEnv("KAFKA_GROUP_ID", "agg-svc"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Orders: OrdersConfig{
			PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			NewOrderWindow: getEnvDuration("NEW_ORDER_WINDOW", 2*time.Minute),
			AckTTL:         getEnvDuration("ORDER_ACK_TTL", 24*time.Hour),
			TableLockTTL:   getEnvDuration("TABLE_LOCK_TTL", 5*time.Second),
			PlaceRateLimit: getEnv("ORDER_RATE_LIMIT", "30-M"),
			ClientIPHeader: getEnv("RATE_LIMIT_CLIENT_IP_HEADER", "X-Real-IP"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Stats: StatsConfig{
			CacheTTL: getEnvDuration("STATS_CACHE_TTL", time.Minute),
			Timezone: getEnv("STATS_TIMEZONE", "Local"),
			LiveTTL:  getEnvDuration("LIVE_COUNTERS_TTL", 48*time.Hour),
		},
		Gateway: GatewayConfig{
			OrderSvcURL:     getEnv("ORDER_SVC_URL", "http://localhost:8081"),
			AnalyticsSvcURL: getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
		},
	}
}

func (c DBConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=disable"
}

func MustInitPostgres(cfg DBConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Broker),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
