package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget, must cover both enrichment fetches

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Mongo (primary document store)
	MongoURI            string        // required, ex: "mongodb://localhost:27017"
	MongoDatabase       string        // database name
	MongoConnectTimeout time.Duration // total time to retry connecting
	MongoRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	MongoMaxWait        time.Duration // max wait between retries
	MongoPingTimeout    time.Duration // timeout for each ping attempt
	MongoWarnThreshold  int           // warn after this many attempts

	// Redis (optional enrichment cache; empty addr disables it)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int

	// Auth
	JWTSecret string        // required
	TokenTTL  time.Duration // bearer-token lifetime

	// Enrichment
	FetchTimeout   time.Duration // outbound HTTP timeout for metadata and summary fetches
	SummaryBaseURL string        // reader endpoint base
	CacheTTL       time.Duration // enrichment cache entry lifetime

	// Access
	TrustProxy       bool // true => trust X-Forwarded-For headers
	RateBurst        int
	RateRefillPerMin int
}

func defaults() *Config {
	return &Config{
		ListenAddr:      ":8080",
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  30 * time.Second,

		LogLevel:  "info",
		PrettyLog: true,

		MongoDatabase:       "marq",
		MongoConnectTimeout: 30 * time.Second,
		MongoRetryInterval:  2 * time.Second,
		MongoMaxWait:        10 * time.Second,
		MongoPingTimeout:    5 * time.Second,
		MongoWarnThreshold:  3,

		RedisUser:           "default",
		RedisDialTimeout:    5 * time.Second,
		RedisReadTimeout:    3 * time.Second,
		RedisWriteTimeout:   3 * time.Second,
		RedisPoolSize:       10,
		RedisConnectTimeout: 30 * time.Second,
		RedisRetryInterval:  2 * time.Second,
		RedisMaxWait:        10 * time.Second,
		RedisPingTimeout:    5 * time.Second,
		RedisWarnThreshold:  3,

		TokenTTL: 30 * 24 * time.Hour,

		FetchTimeout:   10 * time.Second,
		SummaryBaseURL: "https://r.jina.ai/",
		CacheTTL:       24 * time.Hour,

		TrustProxy:       true,
		RateBurst:        20,
		RateRefillPerMin: 60,
	}
}

// Load builds the configuration: hardcoded defaults, then the optional
// YAML file named by MARQ_CONFIG_FILE, then environment variables.
// Environment always wins.
func Load() *Config {
	cfg := defaults()

	if path := os.Getenv("MARQ_CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			panic(fmt.Sprintf("❌ FATAL: failed to load config file %s: %v", path, err))
		}
	}

	applyEnv(cfg)

	if cfg.MongoURI == "" {
		panic("❌ FATAL: MARQ_MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		panic("❌ FATAL: MARQ_JWT_SECRET is required")
	}

	return cfg
}

func applyEnv(cfg *Config) {
	cfg.ListenAddr = getenv("MARQ_LISTEN_ADDR", cfg.ListenAddr)
	cfg.ShutdownTimeout = mustDuration("MARQ_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.RequestTimeout = mustDuration("MARQ_REQUEST_TIMEOUT", cfg.RequestTimeout)

	cfg.LogLevel = getenv("MARQ_LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLog = mustBool("MARQ_PRETTY_LOG", cfg.PrettyLog)

	cfg.MongoURI = getenv("MARQ_MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getenv("MARQ_MONGO_DATABASE", cfg.MongoDatabase)
	cfg.MongoConnectTimeout = mustDuration("MARQ_MONGO_CONNECT_TIMEOUT", cfg.MongoConnectTimeout)
	cfg.MongoRetryInterval = mustDuration("MARQ_MONGO_RETRY_INTERVAL", cfg.MongoRetryInterval)
	cfg.MongoMaxWait = mustDuration("MARQ_MONGO_MAX_WAIT", cfg.MongoMaxWait)
	cfg.MongoPingTimeout = mustDuration("MARQ_MONGO_PING_TIMEOUT", cfg.MongoPingTimeout)
	cfg.MongoWarnThreshold = getenvInt("MARQ_MONGO_WARN_THRESHOLD", cfg.MongoWarnThreshold)

	cfg.RedisAddr = getenv("MARQ_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisUser = getenv("MARQ_REDIS_USERNAME", cfg.RedisUser)
	cfg.RedisPassword = getenv("MARQ_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getenvInt("MARQ_REDIS_DB", cfg.RedisDB)
	cfg.RedisDialTimeout = mustDuration("MARQ_REDIS_DIAL_TIMEOUT", cfg.RedisDialTimeout)
	cfg.RedisReadTimeout = mustDuration("MARQ_REDIS_READ_TIMEOUT", cfg.RedisReadTimeout)
	cfg.RedisWriteTimeout = mustDuration("MARQ_REDIS_WRITE_TIMEOUT", cfg.RedisWriteTimeout)
	cfg.RedisPoolSize = getenvInt("MARQ_REDIS_POOL_SIZE", cfg.RedisPoolSize)
	cfg.RedisConnectTimeout = mustDuration("MARQ_REDIS_CONNECT_TIMEOUT", cfg.RedisConnectTimeout)
	cfg.RedisRetryInterval = mustDuration("MARQ_REDIS_RETRY_INTERVAL", cfg.RedisRetryInterval)
	cfg.RedisMaxWait = mustDuration("MARQ_REDIS_MAX_WAIT", cfg.RedisMaxWait)
	cfg.RedisPingTimeout = mustDuration("MARQ_REDIS_PING_TIMEOUT", cfg.RedisPingTimeout)
	cfg.RedisWarnThreshold = getenvInt("MARQ_REDIS_WARN_THRESHOLD", cfg.RedisWarnThreshold)

	cfg.JWTSecret = getenv("MARQ_JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = mustDuration("MARQ_TOKEN_TTL", cfg.TokenTTL)

	cfg.FetchTimeout = mustDuration("MARQ_FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.SummaryBaseURL = getenv("MARQ_SUMMARY_BASE_URL", cfg.SummaryBaseURL)
	cfg.CacheTTL = mustDuration("MARQ_CACHE_TTL", cfg.CacheTTL)

	cfg.TrustProxy = mustBool("MARQ_TRUST_PROXY", cfg.TrustProxy)
	cfg.RateBurst = getenvInt("MARQ_RATE_BURST", cfg.RateBurst)
	cfg.RateRefillPerMin = getenvInt("MARQ_RATE_REFILL_PER_MIN", cfg.RateRefillPerMin)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
