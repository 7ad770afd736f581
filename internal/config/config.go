package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Storage StorageConfig `validate:"required"`
	Logging LoggingConfig `validate:"required"`
}

type StorageConfig struct {
	// Path is the location of the sqlite file backing the key-value store.
	Path string `validate:"required"`
	// QuotaBytes caps the size of a single stored value. Writes beyond the
	// quota fail with a quota error. Zero means no cap.
	QuotaBytes int64 `mapstructure:"quota_bytes"`
}

type LoggingConfig struct {
	Level string `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicepad")

	v.SetEnvPrefix("INVOICEPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("storage.path", "invoicepad.db")
	v.SetDefault("storage.quota_bytes", 5<<20)
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development.
// This is useful for tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Storage: StorageConfig{Path: "invoicepad.db", QuotaBytes: 5 << 20},
		Logging: LoggingConfig{Level: "debug"},
	}
}
