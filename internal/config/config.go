package config

import (
	"github.com/spf13/viper"
)

// Config holds all application settings, loaded from a .env file with
// environment variables taking precedence.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	// Dispatch notifications. Leaving AWSRegion empty disables them.
	AWSRegion       string `mapstructure:"AWS_REGION"`
	NotifyFromEmail string `mapstructure:"NOTIFY_FROM_EMAIL"`
	NotifyOpsEmail  string `mapstructure:"NOTIFY_OPS_EMAIL"`
}

// LoadConfig reads configuration from the given directory's .env file and
// the process environment.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
