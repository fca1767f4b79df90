package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Env            string   `envconfig:"ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`

	Data        Data
	Redis       Redis
	TelegramBot TelegramBot
	Schedule    Schedule
}

// Data points at the static league files. BaseURL is either an http(s) URL or
// a local directory.
type Data struct {
	BaseURL          string        `envconfig:"DATA_BASE_URL" required:"true"`
	Timeout          time.Duration `envconfig:"DATA_TIMEOUT" default:"10s"`
	FetchConcurrency int           `envconfig:"FETCH_CONCURRENCY" default:"4"`
	CacheTTL         time.Duration `envconfig:"DATA_CACHE_TTL" default:"1h"`
	MaxWeeks         int           `envconfig:"MAX_WEEKS" default:"18"`
}

type Redis struct {
	URL string        `envconfig:"REDIS_URL"`
	TTL time.Duration `envconfig:"REDIS_TTL" default:"6h"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// Enabled reports whether a bot token was configured.
func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Schedule struct {
	Timezone      string `envconfig:"SCHEDULE_TIMEZONE" default:"America/Chicago"`
	RecapCron     string `envconfig:"RECAP_CRON" default:"0 9 * * 2"`
	StandingsCron string `envconfig:"STANDINGS_CRON" default:"0 10 * * 3"`
	RefreshCron   string `envconfig:"REFRESH_CRON" default:"0 */6 * * *"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.Data.BaseURL == "" {
		return fmt.Errorf("DATA_BASE_URL must not be empty")
	}
	if c.Data.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.Data.FetchConcurrency)
	}
	if c.Data.MaxWeeks < 1 {
		return fmt.Errorf("MAX_WEEKS must be at least 1, got %d", c.Data.MaxWeeks)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", c.Schedule.Timezone, err)
	}

	crons := map[string]string{
		"RECAP_CRON":     c.Schedule.RecapCron,
		"STANDINGS_CRON": c.Schedule.StandingsCron,
		"REFRESH_CRON":   c.Schedule.RefreshCron,
	}
	for key, spec := range crons {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, spec, err)
		}
	}
	return nil
}
