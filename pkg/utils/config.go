package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Password  PasswordPolicy
	Phone     PhoneConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
	// BlockAdminSignup stops public registration from creating admin accounts.
	BlockAdminSignup bool
	BcryptCost       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// RedisConfig is optional; an empty URL keeps the token blacklist in postgres.
type RedisConfig struct {
	URL string
}

type RateLimitConfig struct {
	// RequestsPerSecond applies per client IP on login and register.
	RequestsPerSecond float64
}

type PhoneConfig struct {
	DefaultRegion string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "marketplace")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("BLOCK_ADMIN_SIGNUP", false)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_ISSUER", "marketplace")
	viper.SetDefault("JWT_ACCESS_TTL", "60m")
	viper.SetDefault("JWT_REFRESH_TTL", "168h")
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("PASSWORD_MIN_LENGTH", 8)
	viper.SetDefault("PASSWORD_MAX_LENGTH", 128)
	viper.SetDefault("PASSWORD_REQUIRE_UPPER", false)
	viper.SetDefault("PASSWORD_REQUIRE_DIGIT", false)
	viper.SetDefault("PASSWORD_REQUIRE_SYMBOL", false)
	viper.SetDefault("PHONE_DEFAULT_REGION", "US")

	// .env is optional; plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),

			BlockAdminSignup: viper.GetBool("BLOCK_ADMIN_SIGNUP"),
			BcryptCost:       viper.GetInt("BCRYPT_COST"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("JWT_SECRET"),
			Issuer:     viper.GetString("JWT_ISSUER"),
			AccessTTL:  viper.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: viper.GetDuration("JWT_REFRESH_TTL"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
		},
		Password: PasswordPolicy{
			MinLength:     viper.GetInt("PASSWORD_MIN_LENGTH"),
			MaxLength:     viper.GetInt("PASSWORD_MAX_LENGTH"),
			RequireUpper:  viper.GetBool("PASSWORD_REQUIRE_UPPER"),
			RequireDigit:  viper.GetBool("PASSWORD_REQUIRE_DIGIT"),
			RequireSymbol: viper.GetBool("PASSWORD_REQUIRE_SYMBOL"),
		},
		Phone: PhoneConfig{
			DefaultRegion: viper.GetString("PHONE_DEFAULT_REGION"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
