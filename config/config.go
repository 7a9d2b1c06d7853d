package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	ServerPort        string `mapstructure:"SERVER_PORT"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	DataPath          string `mapstructure:"DATA_PATH"`
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	BatchSize         int    `mapstructure:"BATCH_SIZE"`
	UploadTimeoutSecs int    `mapstructure:"UPLOAD_TIMEOUT_SECONDS"`
	CheckpointBackend string `mapstructure:"CHECKPOINT_BACKEND"`
	CheckpointPath    string `mapstructure:"CHECKPOINT_PATH"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int    `mapstructure:"REDIS_DB"`
}

func LoadEnvs() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("fail to load .env: %v", err)
	}

	viper.AutomaticEnv()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SERVER_PORT", "8083")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATA_PATH", "")
	viper.SetDefault("API_BASE_URL", "http://localhost:8083")
	viper.SetDefault("BATCH_SIZE", 200)
	viper.SetDefault("UPLOAD_TIMEOUT_SECONDS", 30)
	viper.SetDefault("CHECKPOINT_BACKEND", "file")
	viper.SetDefault("CHECKPOINT_PATH", ".ingestion-checkpoint.json")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
