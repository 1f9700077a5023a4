package iofetch

import (
	"fmt"

	"github.com/gnames/exiodb/pkg/errcode"
	"github.com/gnames/gn"
)

// VersionResolveError creates an error for a DOI that could not be
// resolved to a record id.
func VersionResolveError(doi string, err error) error {
	msg := `Cannot resolve EXIOBASE version from <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - DOI service or Zenodo is down
  - DOI no longer redirects to a Zenodo record`

	vars := []any{doi}

	return &gn.Error{
		Code: errcode.FetchVersionResolveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("resolve %s: %w", doi, err),
	}
}

// VersionStateError creates an error for a version file that cannot be
// read or written.
func VersionStateError(path string, err error) error {
	msg := "Cannot access version file <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchVersionStateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("version state %s: %w", path, err),
	}
}

// VersionUnstableError creates an error for a DOI that kept redirecting
// to different records.
func VersionUnstableError(doi string, checks int) error {
	msg := `EXIOBASE version did not settle after %d checks

<em>DOI:</em> %s

Upstream is probably publishing a new release, try again later.`

	vars := []any{checks, doi}

	return &gn.Error{
		Code: errcode.FetchVersionUnstableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("version of %s unstable after %d checks", doi, checks),
	}
}

// DownloadError creates an error for a failed archive download.
func DownloadError(url string, err error) error {
	msg := `Cannot download <em>%s</em>

<em>Possible causes:</em>
  - Archive does not exist for this year or system
  - Network failure
  - Server returned an incomplete file`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.FetchDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("download %s: %w", url, err),
	}
}

// CorruptArchiveError creates an error for an archive that cannot be
// extracted.
func CorruptArchiveError(path string, err error) error {
	msg := `Cannot extract archive <em>%s</em>

Partially extracted files were removed.`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchCorruptArchiveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unpack %s: %w", path, err),
	}
}

// StagingCleanupError creates an error for staged files that cannot be
// removed.
func StagingCleanupError(path string, err error) error {
	msg := `Cannot remove staged files <em>%s</em>

Remove them manually before the next run.`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchStagingCleanupError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cleanup %s: %w", path, err),
	}
}
