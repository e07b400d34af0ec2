// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	validLogLevels      = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageDrivers = []string{"sqlite", "postgres", "mongo"}
	validMailProviders  = []string{"console", "smtp", "resend"}
)

// Config is the fully resolved application configuration. It's built once
// at startup and handed to every component that needs it.
type Config struct {
	LogLevel    string
	Port        int
	CORSOrigins []string
	BodyLimit   int64
	RateLimit   int

	JWT     JWT
	Storage Storage
	Mail    Mail
	S3      S3
	Events  Events
}

type JWT struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Storage struct {
	Driver        string
	DSN           string
	MongoURI      string
	MongoDatabase string
}

type Mail struct {
	Provider     string
	From         string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
}

type S3 struct {
	Enabled         bool
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	PublicURL       string
}

type Events struct {
	BroadcastInterval time.Duration
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup reads the command line, environment and config.toml and returns
// the resulting Config. An error is returned if something is critically
// wrong and the application can't run because of that.
func Setup() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is Setup with explicit command line arguments
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("social-api", pflag.ContinueOnError)
	configDir := fs.String("config", ".", "Directory containing config.toml")
	fs.Int("port", 5000, "Port to listen on")
	fs.String("log-level", "info", "Log level (debug, info, warn, error, fatal)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()

	v.BindPFlag("host.port", fs.Lookup("port"))
	v.BindPFlag("app.log_level", fs.Lookup("log-level"))

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configDir)

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT", "PORT")
	v.BindEnv("host.cors_origins", "HOST_CORS")

	v.BindEnv("jwt.secret", "JWT_SECRET", "JWT_ACCESS_SECRET_KEY")
	v.BindEnv("jwt.access_ttl", "JWT_ACCESS_TTL")
	v.BindEnv("jwt.refresh_ttl", "JWT_REFRESH_TTL")

	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.dsn", "STORAGE_DSN")
	v.BindEnv("storage.mongo_uri", "MONGODB_URL")
	v.BindEnv("storage.mongo_database", "MONGODB_DATABASE")

	v.BindEnv("mail.provider", "MAIL_PROVIDER")
	v.BindEnv("mail.from", "MAIL_SENDER_ADDRESS")
	v.BindEnv("mail.smtp_host", "MAIL_HOST")
	v.BindEnv("mail.smtp_port", "MAIL_PORT")
	v.BindEnv("mail.smtp_username", "MAIL_USERNAME")
	v.BindEnv("mail.smtp_password", "MAIL_PASSWORD")
	v.BindEnv("mail.resend_api_key", "RESEND_API_KEY")

	v.BindEnv("s3.enabled", "S3_ENABLED")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("s3.public_url", "S3_PUBLIC_URL")

	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")
	v.BindEnv("security.body_limit", "SECURITY_BODY_LIMIT")

	v.BindEnv("events.broadcast_interval", "EVENTS_BROADCAST_INTERVAL")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.cors_origins", "http://localhost:5173")

	v.SetDefault("jwt.access_ttl", "24h")
	v.SetDefault("jwt.refresh_ttl", "720h")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "database.db")
	v.SetDefault("storage.mongo_database", "social")

	v.SetDefault("mail.provider", "console")
	v.SetDefault("mail.smtp_port", 587)

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")

	v.SetDefault("security.rate_limit", 20)
	// in megabytes, photos arrive as data URIs inside JSON bodies
	v.SetDefault("security.body_limit", 10)

	v.SetDefault("events.broadcast_interval", "3s")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	cfg := &Config{
		LogLevel:    v.GetString("app.log_level"),
		Port:        v.GetInt("host.port"),
		CORSOrigins: splitList(v.GetString("host.cors_origins")),
		BodyLimit:   v.GetInt64("security.body_limit") << 20,
		RateLimit:   v.GetInt("security.rate_limit"),
		JWT: JWT{
			Secret:     v.GetString("jwt.secret"),
			AccessTTL:  v.GetDuration("jwt.access_ttl"),
			RefreshTTL: v.GetDuration("jwt.refresh_ttl"),
		},
		Storage: Storage{
			Driver:        v.GetString("storage.driver"),
			DSN:           v.GetString("storage.dsn"),
			MongoURI:      v.GetString("storage.mongo_uri"),
			MongoDatabase: v.GetString("storage.mongo_database"),
		},
		Mail: Mail{
			Provider:     v.GetString("mail.provider"),
			From:         v.GetString("mail.from"),
			SMTPHost:     v.GetString("mail.smtp_host"),
			SMTPPort:     v.GetInt("mail.smtp_port"),
			SMTPUsername: v.GetString("mail.smtp_username"),
			SMTPPassword: v.GetString("mail.smtp_password"),
			ResendAPIKey: v.GetString("mail.resend_api_key"),
		},
		S3: S3{
			Enabled:         v.GetBool("s3.enabled"),
			Bucket:          v.GetString("s3.bucket"),
			Region:          v.GetString("s3.region"),
			AccessKeyID:     v.GetString("s3.access_key_id"),
			SecretAccessKey: v.GetString("s3.secret_access_key"),
			Endpoint:        v.GetString("s3.endpoint"),
			PublicURL:       v.GetString("s3.public_url"),
		},
		Events: Events{
			BroadcastInterval: v.GetDuration("events.broadcast_interval"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("no JWT secret set. Set JWT_SECRET or jwt.secret in config.toml, for example:\n\n%s", genSecret())
	}

	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be bigger than 0")
	}

	if len(c.CORSOrigins) == 0 {
		return errors.New("host.cors_origins can't be empty")
	}

	if c.BodyLimit <= 0 {
		return errors.New("security.body_limit must be bigger than 0")
	}

	if c.RateLimit <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if c.Events.BroadcastInterval <= 0 {
		return errors.New("events.broadcast_interval must be bigger than 0")
	}

	switch c.Storage.Driver {
	case "sqlite", "postgres":
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn can't be empty")
		}
	case "mongo":
		if c.Storage.MongoURI == "" {
			return errors.New("storage.mongo_uri can't be empty")
		}
		if c.Storage.MongoDatabase == "" {
			return errors.New("storage.mongo_database can't be empty")
		}
	}

	if !slices.Contains(validStorageDrivers, c.Storage.Driver) {
		return errors.New("invalid storage driver provided")
	}

	if !slices.Contains(validMailProviders, c.Mail.Provider) {
		return errors.New("invalid mail provider provided")
	}

	switch c.Mail.Provider {
	case "smtp":
		if c.Mail.SMTPHost == "" {
			return errors.New("mail.smtp_host can't be empty")
		}
		if c.Mail.From == "" {
			return errors.New("mail.from can't be empty")
		}
	case "resend":
		if c.Mail.ResendAPIKey == "" {
			return errors.New("mail.resend_api_key can't be empty")
		}
		if c.Mail.From == "" {
			return errors.New("mail.from can't be empty")
		}
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return errors.New("bucket can't be empty")
		}
		if c.S3.AccessKeyID == "" {
			return errors.New("access key id can't be empty")
		}
		if c.S3.SecretAccessKey == "" {
			return errors.New("secret access key can't be empty")
		}
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
