// Package errcode enumerates error codes for all Leafdex failures.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File system errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBPingError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError

	// Collaborator errors
	StorageUploadError

	// Game transaction errors
	GameTxError
	GameUserSyncError

	// Seed errors
	SeedCatalogOpenError
	SeedCatalogReadError
	SeedInsertError

	// Server errors
	ServerStartError
)
