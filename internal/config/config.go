package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL          string   `mapstructure:"REDIS_URL"`
	AuthIssuer        string   `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL       string   `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience      string   `mapstructure:"AUTH_AUDIENCE"`
	AnalyzeEndpoint   string   `mapstructure:"ANALYZE_ENDPOINT"`
	TranslateEndpoint string   `mapstructure:"TRANSLATE_ENDPOINT"`
	StorageURL        string   `mapstructure:"STORAGE_URL"`
	StorageServiceKey string   `mapstructure:"STORAGE_SERVICE_KEY"`
	YouTubeAPIKey     string   `mapstructure:"YOUTUBE_API_KEY"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_JWKS_URL")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("ANALYZE_ENDPOINT")
	v.BindEnv("TRANSLATE_ENDPOINT")
	v.BindEnv("STORAGE_URL")
	v.BindEnv("STORAGE_SERVICE_KEY")
	v.BindEnv("YOUTUBE_API_KEY")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — all requests get a fixed user.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure AUTH_ISSUER for production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside
// development mode real JWT authentication must be configured, and the
// hosted analysis endpoint must be set so analyze requests don't fail at
// call time.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.AuthIssuer == "" && c.AuthJWKSURL == "" {
			return fmt.Errorf(
				"AUTH_ISSUER or AUTH_JWKS_URL must be set when ENV=%q. "+
					"Refusing to start without authentication configuration", c.Env)
		}
		if c.AnalyzeEndpoint == "" {
			return fmt.Errorf("ANALYZE_ENDPOINT is required when ENV=%q. "+
				"Deploy the inference endpoint and set its URL", c.Env)
		}
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	return nil
}
