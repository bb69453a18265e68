package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/compress"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is read from the environment. A .env file in the working directory
// is loaded first.
type Config struct {
	DbDriver string
	DbDsn    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	CacheCodec    string

	AuditSchedule     string
	CacheWarmSchedule string

	LogLevel logrus.Level
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	return cfg
}

// Load reads the configuration and reports malformed values.
func Load() (*Config, error) {
	cfg := &Config{
		DbDriver:          getenv("DB_DRIVER", DriverSqlite),
		DbDsn:             getenv("DB_DSN", "bioref.db"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		CacheCodec:        getenv("CACHE_CODEC", "nop"),
		AuditSchedule:     getenv("AUDIT_SCHEDULE", "@every 10m"),
		CacheWarmSchedule: getenv("CACHE_WARM_SCHEDULE", "@every 30m"),
		CacheTTL:          cache.DefaultTTL,
		LogLevel:          logrus.InfoLevel,
	}

	switch cfg.DbDriver {
	case DriverSqlite, DriverPostgres:
	default:
		return nil, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DbDriver)
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}

	if _, err := compress.New(cfg.CacheCodec); err != nil {
		return nil, fmt.Errorf("CACHE_CODEC: %w", err)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetDb opens the configured database. It exits the process on failure.
func GetDb(cfg *Config) *gorm.DB {
	db, err := OpenDb(cfg)
	if err != nil {
		logrus.Fatalf("failed to open %s database: %v", cfg.DbDriver, err)
	}
	return db
}

func OpenDb(cfg *Config) (*gorm.DB, error) {
	logrus.SetLevel(cfg.LogLevel)

	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	}

	switch cfg.DbDriver {
	case DriverPostgres:
		return gorm.Open(postgres.Open(cfg.DbDsn), gormConfig)
	default:
		db, err := gorm.Open(sqlite.Open(sqliteDsn(cfg.DbDsn)), gormConfig)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
}

// sqliteDsn turns on foreign keys and a busy timeout unless the dsn sets them.
func sqliteDsn(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "_busy_timeout") && !strings.Contains(dsn, "_timeout") {
		params = append(params, "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func gormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	case level >= logrus.ErrorLevel:
		return logger.Error
	}
	return logger.Silent
}

// GetCache connects to redis when REDIS_ADDR is set. An unreachable server
// disables caching instead of failing.
func GetCache(cfg *Config) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewNop()
	}

	codec, err := compress.New(cfg.CacheCodec)
	if err != nil {
		logrus.Warnf("cache disabled: %v", err)
		return cache.NewNop()
	}

	r := cache.NewRedis(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
		Encoder:  codec,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		logrus.Warnf("cache disabled, redis %s unreachable: %v", cfg.RedisAddr, err)
		_ = r.Close()
		return cache.NewNop()
	}

	logrus.Infof("using redis cache at %s (%s)", cfg.RedisAddr, codec.Name())
	return r
}
