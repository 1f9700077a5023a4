package iofetch

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Unpack extracts an archive into a directory named after it, next to the
// archive. Extraction goes to a temporary directory which is renamed into
// place on success and removed on any failure. A leading directory equal
// to the archive base name is stripped from entry names.
func (f *Fetcher) Unpack(archivePath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(archivePath), ".zip")
	parent := filepath.Dir(archivePath)
	dst := filepath.Join(parent, base)

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", CorruptArchiveError(archivePath, err)
	}
	defer zr.Close()

	tmp, err := os.MkdirTemp(parent, base+".*.tmp")
	if err != nil {
		return "", CorruptArchiveError(archivePath, err)
	}
	done := false
	defer func() {
		if !done {
			os.RemoveAll(tmp)
		}
	}()

	var count int
	for _, zf := range zr.File {
		name := entryName(zf.Name, base)
		if name == "" {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			err = fmt.Errorf("entry %q escapes target directory", zf.Name)
			return "", CorruptArchiveError(archivePath, err)
		}

		target := filepath.Join(tmp, filepath.FromSlash(name))
		if zf.FileInfo().IsDir() {
			if err = os.MkdirAll(target, 0755); err != nil {
				return "", CorruptArchiveError(archivePath, err)
			}
			continue
		}
		if err = extract(zf, target); err != nil {
			return "", CorruptArchiveError(archivePath, err)
		}
		count++
	}
	if count == 0 {
		return "", CorruptArchiveError(archivePath, errors.New("archive has no files"))
	}

	if err = os.RemoveAll(dst); err != nil {
		return "", CorruptArchiveError(archivePath, err)
	}
	if err = os.Rename(tmp, dst); err != nil {
		return "", CorruptArchiveError(archivePath, err)
	}
	done = true

	slog.Info("Unpacked archive", "archive", archivePath, "files", count)
	return dst, nil
}

// entryName strips the archive base directory from a zip entry name.
func entryName(name, base string) string {
	name = strings.TrimPrefix(name, "./")
	if name == base || name == base+"/" {
		return ""
	}
	if rest, ok := strings.CutPrefix(name, base+"/"); ok {
		name = rest
	}
	name = path.Clean(name)
	if name == "." {
		return ""
	}
	return name
}

// extract copies one entry. Reading the entry to the end verifies its
// CRC-32 checksum.
func extract(zf *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", zf.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", zf.Name, err)
	}
	return nil
}
