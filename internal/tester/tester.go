package tester

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
	// packages are tested in parallel, each process gets its own database
	dbPath = filepath.Join(testPath, "db", fmt.Sprintf("bioref-%d", os.Getpid()))
)

func Setup() {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(dbPath, os.ModePerm)
	if err != nil {
		panic(err)
	}

	dsn := filepath.Join(dbPath, "bioref.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	// sqlite allows one writer; a single connection keeps transactions from
	// failing with SQLITE_BUSY under concurrent tests.
	sqlDB.SetMaxOpenConns(1)

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	err := os.RemoveAll(dbPath)
	if err != nil {
		panic(err)
	}
}

var _ cache.Cache = (*Memory)(nil)

// Memory is an in process cache for tests. Values are stored as JSON so
// callers never share pointers with the cache.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string, v any) (bool, error) {
	m.mu.Lock()
	data, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *Memory) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}

func (m *Memory) SetMany(ctx context.Context, entries map[string]any) error {
	for key, v := range entries {
		if err := m.Set(ctx, key, v); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Has reports whether key is cached.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
