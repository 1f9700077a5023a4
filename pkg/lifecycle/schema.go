package lifecycle

import (
	"context"

	"github.com/gnames/exiodb/pkg/config"
)

// SchemaManager manages the reference tables (regions, sectors) with
// GORM AutoMigrate. Per-region indicator tables are owned by the Loader.
type SchemaManager interface {
	// Create creates or migrates the reference tables. It is idempotent.
	Create(ctx context.Context, cfg *config.Config) error

	// SyncVocabulary replaces the content of the reference tables with the
	// given normalized region and sector labels.
	SyncVocabulary(ctx context.Context, regions, sectors []string) error
}
