package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

const envPrefix = "SHOPAPI_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	LogRotation struct {
		MaxSizeMB  int  `koanf:"max_size_mb"`
		MaxBackups int  `koanf:"max_backups"`
		MaxAgeDays int  `koanf:"max_age_days"`
		Compress   bool `koanf:"compress"`
	} `koanf:"log_rotation"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
	} `koanf:"http"`

	Mongo struct {
		URI            string        `koanf:"uri"`
		Database       string        `koanf:"database"`
		ConnectTimeout time.Duration `koanf:"connect_timeout"`
	} `koanf:"mongo"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Cache struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"cache"`

	Rabbit struct {
		URL      string `koanf:"url"`
		Exchange string `koanf:"exchange"`
		Prefetch int    `koanf:"prefetch"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Enabled          bool     `koanf:"enabled"`
		Brokers          []string `koanf:"brokers"`
		GroupID          string   `koanf:"group_id"`
		FulfillmentTopic string   `koanf:"fulfillment_topic"`
		Version          string   `koanf:"version"`
		InitialOffset    string   `koanf:"initial_offset"`
	} `koanf:"kafka"`

	Security struct {
		JWTSecret  string        `koanf:"jwt_secret"`
		Issuer     string        `koanf:"issuer"`
		Audience   string        `koanf:"audience"`
		TTL        time.Duration `koanf:"ttl"`
		AdminCode  string        `koanf:"admin_code"`
		BcryptCost int           `koanf:"bcrypt_cost"`
	} `koanf:"security"`

	Catalog struct {
		Seed         bool `koanf:"seed"`
		DefaultLimit int  `koanf:"default_limit"`
		MaxLimit     int  `koanf:"max_limit"`
	} `koanf:"catalog"`

	Orders struct {
		PriceTolerance string `koanf:"price_tolerance"`
	} `koanf:"orders"`
}

func Load(pathDir, envName string) (Config, error) {
	// 0) local .env is optional
	_ = godotenv.Load()

	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix SHOPAPI_, nested with __)
	// e.g. SHOPAPI_MONGO__URI, SHOPAPI_SECURITY__JWT_SECRET
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ReplaceAll(s, "__", ".")
	return strings.ToLower(s)
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return errors.New("app.http_addr required")
	}
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		return errors.New("mongo.uri and mongo.database required")
	}
	if c.Security.JWTSecret == "" {
		return errors.New("security.jwt_secret required")
	}
	if _, err := c.PriceTolerance(); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers required when kafka.enabled")
	}
	return nil
}

// PriceTolerance is the allowed gap between a claimed and a computed total.
func (c Config) PriceTolerance() (decimal.Decimal, error) {
	if c.Orders.PriceTolerance == "" {
		return decimal.RequireFromString("0.01"), nil
	}
	d, err := decimal.NewFromString(c.Orders.PriceTolerance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("orders.price_tolerance: %w", err)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("orders.price_tolerance must not be negative")
	}
	return d, nil
}
