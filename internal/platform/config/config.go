package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	SlackBotToken      string
	SlackSigningSecret string
	ChallengeChannelID string
	ReviewChannelID    string
	AdminSlackIDs      []string

	ClaimTTL           time.Duration
	WorkerPollInterval time.Duration
	SerialQueueDepth   int

	EnableClaimExpirer bool
	EnableSwagger      bool
}

func Load() (Config, error) {
	// A missing .env is the normal production case.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "codecomp"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var admins []string
	for _, value := range strings.Split(os.Getenv("ADMIN_SLACK_IDS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			admins = append(admins, value)
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		ChallengeChannelID: os.Getenv("CHALLENGE_CHANNEL_ID"),
		ReviewChannelID:    os.Getenv("REVIEW_CHANNEL_ID"),
		AdminSlackIDs:      admins,

		ClaimTTL:           envDuration("CLAIM_TTL", 5*time.Minute),
		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 30*time.Second),
		SerialQueueDepth:   envInt("SERIAL_QUEUE_DEPTH", 64),

		EnableClaimExpirer: envBool("ENABLE_CLAIM_EXPIRER", true),
		EnableSwagger:      envBool("ENABLE_SWAGGER", true),
	}, nil
}

// IsAdmin reports whether the Slack user is on the configured admin
// allow-list.
func (c Config) IsAdmin(slackUserID string) bool {
	want := strings.TrimSpace(slackUserID)
	if want == "" {
		return false
	}
	for _, id := range c.AdminSlackIDs {
		if id == want {
			return true
		}
	}
	return false
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
