package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Matching  MatchingConfig
	Embedding EmbeddingConfig
	Ranking   RankingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type MatchingConfig struct {
	// ConfigPath points at an optional YAML file with extra strategies,
	// tunable overrides and region groups. Builtins apply when empty.
	ConfigPath string
}

type EmbeddingConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Dimension applies to both the remote model and the local fallback;
	// zero keeps the package defaults.
	Dimension     int
	CacheCapacity int
}

type RankingConfig struct {
	// Workers sizes the scoring pool; zero means one worker per CPU, capped.
	Workers int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			missing = append(missing, key+" (not a number)")
			return def
		}
		return n
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			missing = append(missing, key+" (not a duration)")
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", ""),
		DBPort:     opt("DB_PORT", ""),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", ""),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.Matching = MatchingConfig{
		ConfigPath: opt("MATCHING_CONFIG", ""),
	}

	cfg.Embedding = EmbeddingConfig{
		APIKey:        opt("EMBEDDING_API_KEY", ""),
		BaseURL:       opt("EMBEDDING_BASE_URL", ""),
		Model:         opt("EMBEDDING_MODEL", ""),
		Dimension:     optInt("EMBEDDING_DIMENSION", 0),
		CacheCapacity: optInt("EMBEDDING_CACHE_CAPACITY", 0),
	}

	cfg.Ranking = RankingConfig{
		Workers: optInt("RANK_WORKERS", 0),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// HasDatabase reports whether enough connection settings are present to try
// Postgres at all; without them the service runs on the built-in taxonomy.
func (c DatabaseConfig) HasDatabase() bool {
	return c.DBHost != "" && c.DBName != ""
}
