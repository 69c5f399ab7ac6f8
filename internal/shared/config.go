package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// Table sources: MySQL wins when a DSN is set, otherwise CSV files.
	DataDir  string
	MySQLDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// Engine policy values; observed variants treat these as tunable.
	Metric         string
	K              int
	ColdStartMin   int
	LikedThreshold float64
	PriceTolerance float64
	DefaultN       int
	MaxN           int

	// Recommend endpoint rate limit, requests per second.
	RecommendRPS int

	// Seeder sizing.
	SeedHotels  int
	SeedUsers   int
	SeedRatings int
	SeedSeed    int64
	SeedWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		DataDir:  env("DATA_DIR", "data"),
		MySQLDSN: env("MYSQL_DSN", ""),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		Metric:         env("SIMILARITY_METRIC", "cosine"),
		K:              atoi("KNN_NEIGHBORS", 5),
		ColdStartMin:   atoi("COLD_START_MIN_RATINGS", 2),
		LikedThreshold: atof("LIKED_THRESHOLD", 3.5),
		PriceTolerance: atof("PRICE_TOLERANCE", 100),
		DefaultN:       atoi("DEFAULT_RECOMMENDATIONS", 5),
		MaxN:           atoi("MAX_RECOMMENDATIONS", 50),

		RecommendRPS: atoi("RECOMMEND_RPS", 20),

		SeedHotels:  atoi("SEED_HOTELS", 80),
		SeedUsers:   atoi("SEED_USERS", 2000),
		SeedRatings: atoi("SEED_RATINGS", 50000),
		SeedSeed:    int64(atoi("SEED_RANDOM_SEED", 42)),
		SeedWorkers: atoi("SEED_WORKERS", 8),
	}
	if c.MySQLDSN == "" {
		log.Info().Str("dir", c.DataDir).Msg("MYSQL_DSN empty, loading tables from CSV")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
