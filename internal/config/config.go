package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config is built once at startup and passed by value to the components
// that need it. Nothing mutates it afterwards.
type Config struct {
	BotToken  string `env:"BOT_TOKEN,required,notEmpty"`
	CMCAPIKey string `env:"CMC_API_KEY,required,notEmpty"`

	Mode          string `env:"BOT_MODE" envDefault:"polling"`
	Port          string `env:"PORT" envDefault:"8080"`
	WebhookURL    string `env:"WEBHOOK_URL"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	CMCBaseURL      string `env:"CMC_BASE_URL" envDefault:"https://pro-api.coinmarketcap.com"`
	TelegramBaseURL string `env:"TELEGRAM_BASE_URL" envDefault:"https://api.telegram.org"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// New loads an optional .env file and then reads the process environment.
func New() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return parse(env.Options{})
}

func loadDotEnv() error {
	// envs may be provided by the environment, so a missing file is fine
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not load .env: %v", err)
		return err
	}
	return nil
}

func parse(opts env.Options) (Config, error) {
	var conf Config
	if err := env.ParseWithOptions(&conf, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := conf.validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c Config) validate() error {
	switch c.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.WebhookURL == "" {
			return fmt.Errorf("WEBHOOK_URL is required when BOT_MODE=%s", ModeWebhook)
		}
	default:
		return fmt.Errorf("BOT_MODE must be %q or %q, got %q", ModePolling, ModeWebhook, c.Mode)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// ConfigureLogger applies the logging settings to the global logrus logger.
func (c Config) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
