package storage

import (
	"github.com/bellapacxx/bingo-client/models"
	"github.com/bellapacxx/bingo-client/utils/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the persisted profile cache: one row holding name, phone,
// stake, sessionId and the auto-mark preference. A missing or unusable
// cache is non-fatal; the engine falls back to defaults.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite cache at path and migrates the
// profile table. On failure it returns a store that loads defaults and
// drops writes, so the engine keeps running without persistence.
func Open(path string) *Store {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Warnf("profile cache unavailable at %s: %v", path, err)
		return &Store{}
	}
	if err := db.AutoMigrate(&models.Profile{}); err != nil {
		logger.Warnf("profile cache migration failed: %v", err)
		return &Store{}
	}
	return &Store{db: db}
}

// Load returns the cached profile, or a zero profile when none exists or
// the cache is corrupt.
func (s *Store) Load() models.Profile {
	if s.db == nil {
		return models.Profile{}
	}
	var p models.Profile
	if err := s.db.First(&p).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Warnf("failed to load cached profile: %v", err)
		}
		return models.Profile{}
	}
	return p
}

// Save upserts the single profile row. Failures are logged, not fatal.
func (s *Store) Save(p models.Profile) {
	if s.db == nil {
		return
	}
	p.ID = 1
	if err := s.db.Save(&p).Error; err != nil {
		logger.Warnf("failed to save profile: %v", err)
	}
}
