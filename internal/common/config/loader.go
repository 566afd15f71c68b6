package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (plus an optional config.<env>.yaml overlay)
// with environment variable overrides like DATABASE_POSTGRES_HOST.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func setDefaults() {
	viper.SetDefault("app.name", "whatsapp-orderbot")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("bot.name", "Customer Support Bot")
	viper.SetDefault("bot.business_hours", "9:00-17:00")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("database.postgres.max_connections", 10)
	viper.SetDefault("database.postgres.max_idle", 5)
	viper.SetDefault("database.postgres.sslmode", "disable")
	viper.SetDefault("sessions.backend", "memory")
	viper.SetDefault("sessions.ttl", "30m")
	viper.SetDefault("archive.enabled", false)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}
