package ioschema

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for reference table
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create reference tables

<em>Possible causes:</em>
  - Insufficient database permissions
  - Conflicting table definitions

<em>How to fix:</em>
  1. Check user has CREATE privileges
  2. Run <em>exiodb create --force</em> to start from scratch`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// VocabularyError creates an error for a failed update of
// the reference tables.
func VocabularyError(regions, sectors int, err error) error {
	msg := `Cannot update reference tables

<em>Regions:</em> %d
<em>Sectors:</em> %d

Previous content was kept.`

	vars := []any{regions, sectors}

	return &gn.Error{
		Code: errcode.SchemaVocabularyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to sync vocabulary: %w", err),
	}
}
