package sqlstore

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openORM opens a GORM SQLite connection with sane defaults.
func openORM(path string, opts ...Option) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return gorm.Open(sqlite.Open(path), cfg)
}

// migrateORM ensures the schema exists and seeds the id sequence from any
// rows already present.
func migrateORM(db *gorm.DB) error {
	if err := db.AutoMigrate(&settingRow{}, &sequenceRow{}); err != nil {
		return err
	}
	return db.Exec(
		`INSERT OR IGNORE INTO setting_sequences (name, last_id)
		SELECT ?, COALESCE(MAX(id), 0) FROM serial_terminal_settings`,
		settingsSequence,
	).Error
}

// closeORM closes the underlying SQL DB associated with the GORM connection.
func closeORM(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
