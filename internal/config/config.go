package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // postgres | sqlite
	DSN    string `yaml:"url"`
}

type RealtimeConfig struct {
	WriteTimeout time.Duration `yaml:"write_timeout"`
	SendBuffer   int           `yaml:"send_buffer"`
}

type NotificationsConfig struct {
	ListLimit    int           `yaml:"list_limit"`
	RelayTimeout time.Duration `yaml:"relay_timeout"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

// Enabled reports whether enough of the SMTP section is filled to send mail.
func (e EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && e.FromEmail != ""
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
}

type ExportConfig struct {
	FontPath string `yaml:"font_path"`
}

type LogConfig struct {
	Env   string `yaml:"env"` // local | dev | prod
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		Mode      string `yaml:"mode"`       // gin mode: debug | release | test
		PublicURL string `yaml:"public_url"` // prefix for links in email and telegram
	} `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Realtime      RealtimeConfig      `yaml:"realtime"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Email         EmailConfig         `yaml:"email"`
	Telegram      TelegramConfig      `yaml:"telegram"`
	Export        ExportConfig        `yaml:"export"`
	Log           LogConfig           `yaml:"log"`
}

// Load reads the YAML file at path, applies environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	c.Server.PublicURL = strings.TrimRight(c.Server.PublicURL, "/")
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Realtime.WriteTimeout <= 0 {
		c.Realtime.WriteTimeout = 5 * time.Second
	}
	if c.Realtime.SendBuffer <= 0 {
		c.Realtime.SendBuffer = 16
	}
	if c.Notifications.ListLimit <= 0 {
		c.Notifications.ListLimit = 15
	}
	if c.Notifications.RelayTimeout <= 0 {
		c.Notifications.RelayTimeout = 10 * time.Second
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Log.Env == "" {
		c.Log.Env = "local"
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Server.Mode)
	}
	if c.Database.DSN == "" {
		return errors.New("database.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}
