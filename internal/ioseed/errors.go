package ioseed

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/pkg/errcode"
)

// CatalogOpenError creates an error for an unreadable catalog file.
func CatalogOpenError(path string, err error) error {
	msg := `Cannot open species catalog <em>%s</em>

<em>How to fix:</em>
  1. Check that the file exists and is readable
  2. Check that it is an SQLite database`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedCatalogOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open catalog %s: %w", fn, path, err),
	}
}

// CatalogReadError creates an error for a catalog query failure.
func CatalogReadError(path string, err error) error {
	msg := `Cannot read species from catalog <em>%s</em>

The catalog needs a <em>species</em> table with common_name,
scientific_name, category and description columns.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedCatalogReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read catalog %s: %w", fn, path, err),
	}
}

// InsertError creates an error for a failed species import.
func InsertError(err error) error {
	msg := `Species import failed

<em>How to fix:</em>
  1. Check that migrations ran: leafdex migrate
  2. Inspect the log for the underlying database error`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SeedInsertError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: insert species: %w", fn, err),
	}
}
