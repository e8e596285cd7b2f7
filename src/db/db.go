package db

import (
	"ticketpro/src/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dsn. The default DSN is a shared
// in-memory database that lives as long as the process.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = config.DEFAULT_DSN
	}
	_db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := _db.DB()
	if err != nil {
		return nil, err
	}
	// A shared in-memory database is dropped when its last connection closes.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	return _db, nil
}
