package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaVocabularyError

	// Fetch errors
	FetchVersionResolveError
	FetchVersionStateError
	FetchVersionUnstableError
	FetchDownloadError
	FetchCorruptArchiveError
	FetchStagingCleanupError

	// Reshape errors
	MalformedSourceError
	ShapeMismatchError

	// Load errors
	LoadError
	LoadUpdateValuesError

	// Populate errors
	PopulateAllYearsFailedError
	PopulateCancelledError

	// Optimize errors
	OptimizeVacuumError

	// Query service errors
	QueryError
	ValidationError
	APIServeError
)
