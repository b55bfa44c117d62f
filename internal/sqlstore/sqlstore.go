// Package sqlstore persists serial terminal settings in SQLite through GORM.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	settings "github.com/allbin/serial-settings"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a settings.Store backed by a SQLite database.
type Store struct {
	ORM *gorm.DB
}

// Ensure Store implements settings.Store at compile time
var _ settings.Store = (*Store)(nil)

// Option adjusts how the database is opened.
type Option func(*gorm.Config)

// WithSQLLog logs every statement GORM executes.
func WithSQLLog() Option {
	return func(c *gorm.Config) {
		c.Logger = logger.Default.LogMode(logger.Info)
	}
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	g, err := openORM(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if path == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := g.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := migrateORM(g); err != nil {
		_ = closeORM(g)
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{ORM: g}, nil
}

func (s *Store) Close() error { return closeORM(s.ORM) }

// Insert assigns the next id from the sequence table and writes the row in
// one transaction.
func (s *Store) Insert(ctx context.Context, st settings.Setting) (settings.Setting, error) {
	row := toRow(st)
	err := s.ORM.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq sequenceRow
		if err := tx.Where("name = ?", settingsSequence).Take(&seq).Error; err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
		row.ID = seq.LastID + 1
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&sequenceRow{}).
			Where("name = ?", settingsSequence).
			Update("last_id", row.ID).Error
	})
	if err != nil {
		return settings.Setting{}, translate(err)
	}
	st.ID = row.ID
	return st, nil
}

// Replace overwrites every column of an existing row.
func (s *Store) Replace(ctx context.Context, st settings.Setting) error {
	row := toRow(st)
	res := s.ORM.WithContext(ctx).
		Model(&settingRow{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"port":         row.Port,
			"baud_rate":    row.BaudRate,
			"data_bits":    row.DataBits,
			"stop_bits":    row.StopBits,
			"parity":       row.Parity,
			"flow_control": row.FlowControl,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return settings.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res := s.ORM.WithContext(ctx).Where("id = ?", id).Delete(&settingRow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ByID(ctx context.Context, id int64) (settings.Setting, bool, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *Store) ByPort(ctx context.Context, port string) (settings.Setting, bool, error) {
	return s.findOne(ctx, "port = ?", port)
}

// List returns all rows ordered by id.
func (s *Store) List(ctx context.Context) ([]settings.Setting, error) {
	var rows []settingRow
	if err := s.ORM.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]settings.Setting, 0, len(rows))
	for _, r := range rows {
		st, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// findOne uses Find with a limit so a missing row is not logged as an error.
func (s *Store) findOne(ctx context.Context, query string, arg any) (settings.Setting, bool, error) {
	var rows []settingRow
	if err := s.ORM.WithContext(ctx).Where(query, arg).Limit(1).Find(&rows).Error; err != nil {
		return settings.Setting{}, false, err
	}
	if len(rows) == 0 {
		return settings.Setting{}, false, nil
	}
	st, err := fromRow(rows[0])
	if err != nil {
		return settings.Setting{}, false, err
	}
	return st, true, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return settings.ErrDuplicatePort
	}
	return err
}
