package config

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	JWT          JWT
	Redis        Redis
	Gemini       Gemini
	StartLockTTL time.Duration
}

type Server struct {
	Port      string
	GinMode   string
	PublicURL string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWT struct {
	Secret   string
	TokenTTL time.Duration
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Gemini struct {
	ApiKey string
	Model  string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("PUBLIC_URL", "http://localhost:3000")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("ATTEMPT_START_LOCK_TTL", "5s")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.PublicURL = viper.GetString("PUBLIC_URL")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.TokenTTL = viper.GetDuration("JWT_TTL")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.StartLockTTL = viper.GetDuration("ATTEMPT_START_LOCK_TTL")

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Bool("redis", config.Redis.Addr != "").
		Bool("gemini", config.Gemini.ApiKey != "").
		Msg("Config loaded")
	return &config, nil
}
