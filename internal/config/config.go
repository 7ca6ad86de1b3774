/**
 * @description
 * This package handles the configuration management for the service. It uses the
 * Viper library to read configuration from environment variables, providing a
 * centralized and straightforward way to manage application settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the outreach-service.
// These values are loaded from environment variables. Most third-party
// credentials are not validated at startup; a route depending on a missing
// credential fails at call time instead.
type Config struct {
	ServerPort                 string `mapstructure:"SERVER_PORT"`
	DatabaseURL                string `mapstructure:"DATABASE_URL"`
	RedisURL                   string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix       string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	RabbitMQURL                string `mapstructure:"RABBITMQ_URL"`
	EventExchange              string `mapstructure:"EVENT_EXCHANGE"`
	UnipileAPIURL              string `mapstructure:"UNIPILE_API_URL"`
	UnipileAPIKey              string `mapstructure:"UNIPILE_API_KEY"`
	VoiceAPIBaseURL            string `mapstructure:"VOICE_API_BASE_URL"`
	VoiceAPIKey                string `mapstructure:"VOICE_API_KEY"`
	StorageAPIURL              string `mapstructure:"STORAGE_API_URL"`
	StorageAPIKey              string `mapstructure:"STORAGE_API_KEY"`
	StorageBucket              string `mapstructure:"STORAGE_BUCKET"`
	GeminiAPIKey               string `mapstructure:"GEMINI_API_KEY"`
	JWTSecret                  string `mapstructure:"JWT_SECRET"`
	ScheduleSecret             string `mapstructure:"SCHEDULE_SECRET"`
	ProductionBaseURL          string `mapstructure:"PRODUCTION_BASE_URL"`
	CORSAllowedOrigins         string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	DispatchRateLimitPerMinute int    `mapstructure:"DISPATCH_RATE_LIMIT_PER_MINUTE"`
	ReconnectSweepSchedule     string `mapstructure:"RECONNECT_SWEEP_SCHEDULE"`
	HostedAuthLinkTTLMinutes   int    `mapstructure:"HOSTED_AUTH_LINK_TTL_MINUTES"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("EVENT_EXCHANGE", "scoutline.events")
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "scoutline:rate_limit")
	viper.SetDefault("STORAGE_BUCKET", "recordings")
	viper.SetDefault("DISPATCH_RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("HOSTED_AUTH_LINK_TTL_MINUTES", 60)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("EVENT_EXCHANGE")
	_ = viper.BindEnv("UNIPILE_API_URL")
	_ = viper.BindEnv("UNIPILE_API_KEY")
	_ = viper.BindEnv("VOICE_API_BASE_URL")
	_ = viper.BindEnv("VOICE_API_KEY")
	_ = viper.BindEnv("STORAGE_API_URL")
	_ = viper.BindEnv("STORAGE_API_KEY")
	_ = viper.BindEnv("STORAGE_BUCKET")
	_ = viper.BindEnv("GEMINI_API_KEY")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("SCHEDULE_SECRET")
	_ = viper.BindEnv("PRODUCTION_BASE_URL")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("DISPATCH_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("RECONNECT_SWEEP_SCHEDULE")
	_ = viper.BindEnv("HOSTED_AUTH_LINK_TTL_MINUTES")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}

// AllowedOrigins splits the comma-separated CORS origin list, defaulting to
// the production base URL when unset.
func (c Config) AllowedOrigins() []string {
	raw := strings.TrimSpace(c.CORSAllowedOrigins)
	if raw == "" {
		if c.ProductionBaseURL != "" {
			return []string{c.ProductionBaseURL}
		}
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
