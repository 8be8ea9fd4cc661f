package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	ExchangeRate ExchangeRate
	DB           DB
	Auth         Auth

	HTTPPort int    `env:"HTTP_PORT,default=8080"`
	AppEnv   string `env:"APP_ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

type ExchangeRate struct {
	EndpointBaseURL string `env:"EXCHANGE_RATE_ENDPOINT_BASE_URL,default=http://apilayer.net"`
	AccessKey       string `env:"EXCHANGE_RATE_ACCESS_KEY"`
	TimeoutMs       int    `env:"EXCHANGE_RATE_TIMEOUT_MS,default=5000"`
	// CacheTTLMs of 0 fetches a fresh rate for every order.
	CacheTTLMs int `env:"EXCHANGE_RATE_CACHE_TTL_MS,default=0"`
}

func (e ExchangeRate) Timeout() time.Duration {
	return time.Duration(e.TimeoutMs) * time.Millisecond
}

func (e ExchangeRate) CacheTTL() time.Duration {
	return time.Duration(e.CacheTTLMs) * time.Millisecond
}

type DB struct {
	URL      string `env:"DB_URL,required"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
}

// ConnString is URL with User and Password, when set, replacing its credentials.
func (d DB) ConnString() (string, error) {
	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("DB_URL[%s] is not a postgres URL", u.Redacted())
	}

	if d.User != "" {
		password, _ := u.User.Password()
		if d.Password != "" {
			password = d.Password
		}
		u.User = url.UserPassword(d.User, password)
	} else if d.Password != "" {
		u.User = url.UserPassword(u.User.Username(), d.Password)
	}

	return u.String(), nil
}

type Auth struct {
	TokenSecret     string `env:"AUTH_TOKEN_SECRET,required"`
	TokenTTLSeconds int    `env:"AUTH_TOKEN_TTL_SECONDS,default=3600"`
}

func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLSeconds) * time.Second
}

// Load reads optional dotenv files into the environment and decodes the environment into Config.
// Variables already set in the environment win over dotenv values.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("envdecode.Decode: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.ExchangeRate.TimeoutMs <= 0 {
		return fmt.Errorf("EXCHANGE_RATE_TIMEOUT_MS[%d] is not positive", c.ExchangeRate.TimeoutMs)
	}
	if c.ExchangeRate.CacheTTLMs < 0 {
		return fmt.Errorf("EXCHANGE_RATE_CACHE_TTL_MS[%d] is negative", c.ExchangeRate.CacheTTLMs)
	}
	if c.Auth.TokenTTLSeconds <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL_SECONDS[%d] is not positive", c.Auth.TokenTTLSeconds)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT[%d] is not valid", c.HTTPPort)
	}

	return nil
}
