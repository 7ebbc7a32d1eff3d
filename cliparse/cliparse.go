package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	Port            int           `yaml:"port" env:"PORT" env-default:"3318"`
	DatabaseURL     string        `yaml:"database_url" env:"DATABASE_URL"`
	DatabaseType    string        `yaml:"database_type" env:"DATABASE_TYPE" env-default:"sqlite"`
	JWTSecret       string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTExpiration   time.Duration `yaml:"jwt_expiration" env:"JWT_EXPIRATION" env-default:"168h"`
	MaxPageSize     int           `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"50"`
	HTTPTimeout     time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	HTTPIdleTimeout time.Duration `yaml:"http_idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// ParseFlags loads .env, then a YAML file (-config or CONFIG_PATH) or the
// environment, and finally applies command-line flags on top.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	flags := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	configPath := flags.String("config", "", "Config file path")
	env := flags.String("env", "", "Environment (local, dev, prod)")
	port := flags.Int("p", 0, "Server port")
	dbURL := flags.String("d", "", "Database URL")
	dbType := flags.String("t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	jwtSecret := flags.String("jwt-secret", "", "JWT signing secret (prefer env)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot read environment: %w", err)
	}

	// CLI overrides file and env
	if *env != "" {
		cfg.Env = *env
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}
	if *dbType != "" {
		cfg.DatabaseType = *dbType
	}
	if *jwtSecret != "" {
		cfg.JWTSecret = *jwtSecret
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.MaxPageSize < 1 {
		return Config{}, errors.New("MAX_PAGE_SIZE must be positive")
	}

	return cfg, nil
}
