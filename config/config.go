package config

import (
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	MinSessionSecretLength = 32

	defaultSessionTTLHours            = 72
	defaultMarketplaceCacheTTLSeconds = 60
)

type Config struct {
	GeneralVersion             string `mapstructure:"GENERAL_VERSION"`
	Environment                string `mapstructure:"ENVIRONMENT"`
	ServerPort                 int    `mapstructure:"SERVER_PORT"`
	DatabaseHost               string `mapstructure:"DB_HOST"`
	DatabasePort               int    `mapstructure:"DB_PORT"`
	DatabaseName               string `mapstructure:"DB_NAME"`
	DatabaseUser               string `mapstructure:"DB_USER"`
	DatabasePassword           string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress       string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort          int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset         int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins           string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SessionSecret              string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours            int    `mapstructure:"SESSION_TTL_HOURS"`
	SessionCookieSecure        bool   `mapstructure:"SESSION_COOKIE_SECURE"`
	MarketplaceCacheTTLSeconds int    `mapstructure:"MARKETPLACE_CACHE_TTL_SECONDS"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	viper.SetDefault("SESSION_TTL_HOURS", defaultSessionTTLHours)
	viper.SetDefault("MARKETPLACE_CACHE_TTL_SECONDS", defaultMarketplaceCacheTTLSeconds)
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("ENVIRONMENT", "production")

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
		"CORS_ALLOW_ORIGINS",
		"SESSION_SECRET", "SESSION_TTL_HOURS", "SESSION_COOKIE_SECURE",
		"MARKETPLACE_CACHE_TTL_SECONDS",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"serverPort", config.ServerPort,
		"dbHost", config.DatabaseHost,
	)
	if err := Validate(config); err != nil {
		return Config{}, err
	}

	ConfigInstance = config
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

// Validate rejects configurations the server cannot start with.
func Validate(config Config) error {
	log := logger.New("config").Function("Validate")

	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if len(config.SessionSecret) < MinSessionSecretLength {
		return log.Error(
			"Fatal error: SESSION_SECRET must be at least 32 bytes",
			"length", len(config.SessionSecret),
		)
	}

	if config.SessionTTLHours <= 0 {
		return log.Error(
			"Fatal error: SESSION_TTL_HOURS must be positive",
			"sessionTTLHours", config.SessionTTLHours,
		)
	}

	if config.MarketplaceCacheTTLSeconds < 0 {
		return log.Error(
			"Fatal error: MARKETPLACE_CACHE_TTL_SECONDS must not be negative",
			"marketplaceCacheTTLSeconds", config.MarketplaceCacheTTLSeconds,
		)
	}

	return nil
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c Config) MarketplaceCacheTTL() time.Duration {
	return time.Duration(c.MarketplaceCacheTTLSeconds) * time.Second
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
