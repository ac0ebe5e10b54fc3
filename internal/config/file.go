package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. Pointer fields distinguish
// "unset" from zero values so the file only overrides what it names.
type fileConfig struct {
	ListenAddr      *string        `yaml:"listen_addr"`
	ShutdownTimeout *time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  *time.Duration `yaml:"request_timeout"`

	LogLevel  *string `yaml:"log_level"`
	PrettyLog *bool   `yaml:"pretty_log"`

	Mongo *struct {
		URI      *string `yaml:"uri"`
		Database *string `yaml:"database"`
	} `yaml:"mongo"`

	Redis *struct {
		Addr     *string `yaml:"addr"`
		Username *string `yaml:"username"`
		Password *string `yaml:"password"`
		DB       *int    `yaml:"db"`
	} `yaml:"redis"`

	Auth *struct {
		JWTSecret *string        `yaml:"jwt_secret"`
		TokenTTL  *time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`

	Enrichment *struct {
		FetchTimeout   *time.Duration `yaml:"fetch_timeout"`
		SummaryBaseURL *string        `yaml:"summary_base_url"`
		CacheTTL       *time.Duration `yaml:"cache_ttl"`
	} `yaml:"enrichment"`

	TrustProxy       *bool `yaml:"trust_proxy"`
	RateBurst        *int  `yaml:"rate_burst"`
	RateRefillPerMin *int  `yaml:"rate_refill_per_min"`
}

// applyFile overlays the YAML file at path onto cfg. Fields absent
// from the file keep their current values.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.ListenAddr, fc.ListenAddr)
	setDuration(&cfg.ShutdownTimeout, fc.ShutdownTimeout)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setString(&cfg.LogLevel, fc.LogLevel)
	setBool(&cfg.PrettyLog, fc.PrettyLog)

	if fc.Mongo != nil {
		setString(&cfg.MongoURI, fc.Mongo.URI)
		setString(&cfg.MongoDatabase, fc.Mongo.Database)
	}
	if fc.Redis != nil {
		setString(&cfg.RedisAddr, fc.Redis.Addr)
		setString(&cfg.RedisUser, fc.Redis.Username)
		setString(&cfg.RedisPassword, fc.Redis.Password)
		setInt(&cfg.RedisDB, fc.Redis.DB)
	}
	if fc.Auth != nil {
		setString(&cfg.JWTSecret, fc.Auth.JWTSecret)
		setDuration(&cfg.TokenTTL, fc.Auth.TokenTTL)
	}
	if fc.Enrichment != nil {
		setDuration(&cfg.FetchTimeout, fc.Enrichment.FetchTimeout)
		setString(&cfg.SummaryBaseURL, fc.Enrichment.SummaryBaseURL)
		setDuration(&cfg.CacheTTL, fc.Enrichment.CacheTTL)
	}

	setBool(&cfg.TrustProxy, fc.TrustProxy)
	setInt(&cfg.RateBurst, fc.RateBurst)
	setInt(&cfg.RateRefillPerMin, fc.RateRefillPerMin)

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}
