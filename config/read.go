package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.public.allow_origins", []string{"*"})
	viper.SetDefault("server.rate_limit.login_per_minute", 10)
	viper.SetDefault("server.rate_limit.public_per_minute", 30)

	viper.SetDefault("session.cookie_name", "kc_session")
	viper.SetDefault("session.ttl_minutes", 720)
	viper.SetDefault("session.login_path", "/login")

	viper.SetDefault("uploads.backend", "local")
	viper.SetDefault("uploads.max_size_bytes", 4<<20)
	viper.SetDefault("uploads.allowed_types", []string{
		"image/jpeg", "image/png", "image/webp", "image/gif", "application/pdf",
	})
	viper.SetDefault("uploads.local_dir", "uploads")
	viper.SetDefault("uploads.base_url", "/uploads")

	viper.SetDefault("validation.phone_region", "GB")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output.stdout", true)
}

func ReadConfig(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	setDefaults()

	// Allow env vars to override config values.
	// e.g. KINGSCARE_DATABASE_HOST overrides database.host
	viper.SetEnvPrefix("KINGSCARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read the config file (optional in Docker environments)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only fail if it's not a "file not found" error
			if os.Getenv("KINGSCARE_DATABASE_HOST") == "" {
				return nil, fmt.Errorf("error reading config file: %v", err)
			}
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	return config
}
