package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingStripeKey is returned when the Stripe secret key is not configured.
var ErrMissingStripeKey = errors.New("missing env var LOGARY_STRIPE_SECRET_KEY")

// Config is the application configuration
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Stripe  StripeConfig
	Kafka   KafkaConfig
	Pricing PricingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string
	Format string
}

// StripeConfig holds payment processor settings
type StripeConfig struct {
	SecretKey         string
	CoresProduct      string
	DevsProduct       string
	MaxNetworkRetries int64
	// APIURL overrides the Stripe API base URL, e.g. for stripe-mock.
	APIURL string
}

// KafkaConfig holds event publishing settings. Publishing is disabled when
// Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PricingConfig holds list prices used to recompute an order's price.
type PricingConfig struct {
	Currency   string
	CoreYearly string
	DevYearly  string
	VATRate    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOGARY_STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_CORES_PRODUCT", "logary_license_cores")
	v.SetDefault("STRIPE_DEVS_PRODUCT", "logary_license_devs")
	v.SetDefault("STRIPE_MAX_NETWORK_RETRIES", 0)
	v.SetDefault("STRIPE_API_URL", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "checkout.completed")
	v.SetDefault("PRICING_CURRENCY", "EUR")
	v.SetDefault("PRICING_CORE_YEARLY", "120")
	v.SetDefault("PRICING_DEV_YEARLY", "200")
	v.SetDefault("PRICING_VAT_RATE", "0.25")
}

// Load reads configuration from a .env file (when present), an optional
// config.yaml in the working directory and the environment, in increasing
// order of precedence.
func Load() (*Config, error) {
	// .env is optional outside of local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already prepared viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			ReadTimeout:     v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Stripe: StripeConfig{
			SecretKey:         strings.TrimSpace(v.GetString("LOGARY_STRIPE_SECRET_KEY")),
			CoresProduct:      v.GetString("STRIPE_CORES_PRODUCT"),
			DevsProduct:       v.GetString("STRIPE_DEVS_PRODUCT"),
			MaxNetworkRetries: v.GetInt64("STRIPE_MAX_NETWORK_RETRIES"),
			APIURL:            v.GetString("STRIPE_API_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Pricing: PricingConfig{
			Currency:   v.GetString("PRICING_CURRENCY"),
			CoreYearly: v.GetString("PRICING_CORE_YEARLY"),
			DevYearly:  v.GetString("PRICING_DEV_YEARLY"),
			VATRate:    v.GetString("PRICING_VAT_RATE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return ErrMissingStripeKey
	}
	if c.Stripe.CoresProduct == "" || c.Stripe.DevsProduct == "" {
		return fmt.Errorf("stripe product names must not be empty")
	}
	if c.Stripe.CoresProduct == c.Stripe.DevsProduct {
		return fmt.Errorf("stripe product names must differ, both are %q", c.Stripe.CoresProduct)
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
