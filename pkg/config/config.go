package config

import (
	"errors"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrMissingSigningKey = errors.New("JWT_SECRET_KEY must be set outside development")

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Category CategoryConfig
	Logger   LoggerConfig
}

type AppConfig struct {
	Env     string
	Version string
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	Migrate  bool
}

type JWTConfig struct {
	SecretKey         string
	Expiration        time.Duration
	RefreshExp        time.Duration
	RevocationEnabled bool
}

type AuthConfig struct {
	BcryptCost         int
	HashConcurrency    int64
	RateLimitPerMinute int
}

// CategoryConfig holds tenant category policy.
type CategoryConfig struct {
	// AllowDefaultNameCollision lets a user create a category whose name
	// matches a shared default. When false such names are rejected.
	AllowDefaultNameCollision bool
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	jwtExp := getEnvInt("JWT_EXPIRATION_MINUTES", 60*24)
	refreshExp := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168)

	cfg := &Config{
		App: AppConfig{
			Env:     strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "spendio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			Migrate:  getEnvBool("DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			SecretKey:         os.Getenv("JWT_SECRET_KEY"),
			Expiration:        time.Duration(jwtExp) * time.Minute,
			RefreshExp:        time.Duration(refreshExp) * time.Hour,
			RevocationEnabled: getEnvBool("JWT_REVOCATION_ENABLED", false),
		},
		Auth: AuthConfig{
			BcryptCost:         getEnvInt("BCRYPT_COST", 12),
			HashConcurrency:    int64(getEnvInt("HASH_CONCURRENCY", runtime.NumCPU())),
			RateLimitPerMinute: getEnvInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		},
		Category: CategoryConfig{
			AllowDefaultNameCollision: getEnvBool("CATEGORY_ALLOW_DEFAULT_NAME_COLLISION", true),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a running server.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" && !c.IsDevelopment() {
		return ErrMissingSigningKey
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION_MINUTES must be positive")
	}
	if c.Auth.HashConcurrency < 1 {
		c.Auth.HashConcurrency = 1
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
