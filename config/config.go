package config

import (
	"os"
	"strings"
)

// Config holds all environment-driven settings.
// Absent values fall back to defaults; X_BEARER_TOKEN deliberately has none,
// because an empty token is how social posting is disabled.
type Config struct {
	Port        string
	SiteBaseURL string

	// Mail
	FromEmail string
	SMTPAddr  string
	SMTPUser  string
	SMTPPass  string

	// Social
	XBearerToken   string
	XTweetEndpoint string

	// Redis (subscriptions + idempotency ledger)
	RedisAddr string
	RedisPass string

	// Kafka (optional durable event transport)
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// S3 (optional article image storage)
	S3Bucket       string
	S3Region       string
	S3Prefix       string
	S3UsePathStyle bool
}

// Load reads configuration from environment variables.
// Call godotenv.Load() before this if you want .env support.
func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		SiteBaseURL:    strings.TrimRight(getenv("SITE_BASE_URL", "http://127.0.0.1:8000"), "/"),
		FromEmail:      getenv("DEFAULT_FROM_EMAIL", "no-reply@news.local"),
		SMTPAddr:       getenv("SMTP_ADDR", "localhost:25"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		XBearerToken:   strings.TrimSpace(os.Getenv("X_BEARER_TOKEN")),
		XTweetEndpoint: strings.TrimSpace(getenv("X_TWEET_ENDPOINT", DefaultTweetEndpoint)),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		KafkaTopic:     getenv("KAFKA_TOPIC", "article-approvals"),
		KafkaGroupID:   getenv("KAFKA_GROUP_ID", "newswire-notifier"),
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}

	if brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	return cfg
}

// SocialEnabled reports whether a social credential is configured.
func (c Config) SocialEnabled() bool {
	return c.XBearerToken != ""
}

// KafkaEnabled reports whether approval events should go through Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
