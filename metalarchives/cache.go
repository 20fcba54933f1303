package metalarchives

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CachedResponse is a raw gateway response stored in the plugin-local
// database until it expires.
type CachedResponse struct {
	ID        uint      `gorm:"primaryKey"`
	CacheKey  string    `gorm:"uniqueIndex;size:512;not null"`
	Data      string    `gorm:"type:text"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CachedResponse) TableName() string {
	return "metalarchives_cache"
}

// Cache is a response cache backed by a plugin-local SQLite database.
type Cache struct {
	logger hclog.Logger
	db     *gorm.DB
	ttl    time.Duration
}

// OpenCache opens (and migrates) the cache database at path.
func OpenCache(logger hclog.Logger, path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	c := &Cache{logger: logger, db: db, ttl: ttl}
	if err := c.Migrate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the cached body for key if present and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	var entry CachedResponse
	err := c.db.Where("cache_key = ? AND expires_at > ?", key, time.Now()).First(&entry).Error
	if err != nil {
		return nil, false
	}
	return []byte(entry.Data), true
}

// Put stores a response body. Failures are logged, never surfaced: the
// cache is an optimization, not a dependency.
func (c *Cache) Put(key string, data []byte) {
	entry := CachedResponse{
		CacheKey:  key,
		Data:      string(data),
		ExpiresAt: time.Now().Add(c.ttl),
	}
	if err := c.db.Where("cache_key = ?", key).Delete(&CachedResponse{}).Error; err != nil {
		c.logger.Warn("failed to evict stale cache entry", "key", key, "error", err)
	}
	if err := c.db.Create(&entry).Error; err != nil {
		c.logger.Warn("failed to cache response", "key", key, "error", err)
	}
}

// Prune removes expired entries.
func (c *Cache) Prune() error {
	return c.db.Where("expires_at < ?", time.Now()).Delete(&CachedResponse{}).Error
}

// Migrate creates the cache table.
func (c *Cache) Migrate() error {
	return c.db.AutoMigrate(&CachedResponse{})
}

// Rollback drops the cache table.
func (c *Cache) Rollback() error {
	return c.db.Migrator().DropTable(&CachedResponse{})
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
