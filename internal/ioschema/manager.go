// Package ioschema implements SchemaManager interface for
// the reference tables. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gnames/exiodb/internal/iodb"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/gnames/exiodb/pkg/db"
	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/gnames/exiodb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM.
type manager struct {
	operator db.Operator
	openDB   func(db.Operator) (*sql.DB, error)
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op, openDB: iodb.SQLDB}
}

// Create creates or migrates the regions and sectors tables
// using GORM AutoMigrate.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, closeDB, err := m.gorm()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	slog.Info("Reference tables are ready", "database", cfg.Database.Database)
	return nil
}

// SyncVocabulary replaces content of the reference tables
// in one transaction.
func (m *manager) SyncVocabulary(
	ctx context.Context,
	regions, sectors []string,
) error {
	gormDB, closeDB, err := m.gorm()
	if err != nil {
		return err
	}
	defer closeDB()

	return syncVocabulary(gormDB.WithContext(ctx), regions, sectors)
}

// gorm wraps the operator pool for one call. The returned func closes
// the sql.DB handle, which hands its connections back to the pool.
func (m *manager) gorm() (*gorm.DB, func(), error) {
	sqlDB, err := m.openDB(m.operator)
	if err != nil {
		return nil, nil, NotConnectedError()
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			slog.Warn("Cannot close reference tables handle", "error", err)
		}
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		closeDB()
		return nil, nil, GORMConnectionError(err)
	}
	return gormDB, closeDB, nil
}

func syncVocabulary(gormDB *gorm.DB, regions, sectors []string) error {
	rs := make([]schema.Region, len(regions))
	for i, v := range regions {
		rs[i] = schema.Region{Region: v}
	}
	ss := make([]schema.Sector, len(sectors))
	for i, v := range sectors {
		ss[i] = schema.Sector{Sector: v}
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&schema.Region{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&schema.Sector{}).Error; err != nil {
			return err
		}
		if len(rs) > 0 {
			if err := tx.Create(&rs).Error; err != nil {
				return err
			}
		}
		if len(ss) > 0 {
			if err := tx.Create(&ss).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return VocabularyError(len(regions), len(sectors), err)
	}

	slog.Info("Updated reference tables",
		"regions", len(regions),
		"sectors", len(sectors),
	)
	return nil
}
