package config

import (
	"os"
	"strconv"
	"strings"
	"ticketpro/src/types"
	"time"
)

const DEFAULT_DSN = "file::memory:?cache=shared"

const SESSION_PREFIX = "ticketpro_user"

type Config struct {
	Env             types.Environment
	Port            string
	JWTSecret       []byte
	TokenTTL        time.Duration
	StoreDriver     string
	StoreSeed       bool
	DatabaseDSN     string
	SessionDriver   string
	RedisHost       string
	LoginDelay      time.Duration
	ScanDelay       time.Duration
	EventsDriver    string
	KafkaBroker     string
	KafkaTopic      string
	SNSTopicARN     string
	SQSQueueName    string
	S3AssetsBucket  string
	MailDriver      string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailFrom        string
	TempDir         string
	AppHost         string
	MaintenanceMode bool
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}

// Load reads the configuration from the environment. It must run after
// godotenv has populated it.
func Load() *Config {
	return &Config{
		Env:             types.Environment(getEnv("API_ENV", string(types.Local))),
		Port:            getEnv("PORT", "9090"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "ticketpro-dev-secret")),
		TokenTTL:        getDuration("TOKEN_TTL", 24*time.Hour),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", "memory")),
		StoreSeed:       getBool("STORE_SEED", false),
		DatabaseDSN:     getEnv("DATABASE_DSN", DEFAULT_DSN),
		SessionDriver:   strings.ToLower(getEnv("SESSION_DRIVER", "memory")),
		RedisHost:       getEnv("REDIS_HOST", "localhost:6379"),
		LoginDelay:      getDuration("LOGIN_DELAY", time.Second),
		ScanDelay:       getDuration("SCAN_DELAY", time.Second),
		EventsDriver:    strings.ToLower(getEnv("EVENTS_DRIVER", "log")),
		KafkaBroker:     getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "tickets"),
		SNSTopicARN:     getEnv("SNS_TOPIC_ARN", ""),
		SQSQueueName:    getEnv("SQS_QUEUE_NAME", "ticket-events"),
		S3AssetsBucket:  getEnv("S3_ASSETS_BUCKET", ""),
		MailDriver:      strings.ToLower(getEnv("MAIL_DRIVER", "smtp")),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		MailFrom:        getEnv("MAIL_FROM", "no-reply@ticketpro.com"),
		TempDir:         getEnv("TEMP_DIR", os.TempDir()),
		AppHost:         getEnv("APP_HOST", "http://localhost:5173"),
		MaintenanceMode: getBool("MAINTENANCE_MODE", false),
	}
}

func (c *Config) IsProd() bool {
	return c.Env == types.Production
}
