package iofetch

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/exiodb/pkg/config"
	"github.com/hashicorp/go-retryablehttp"
)

// Fetch downloads the archive of a year into the staging directory. Data
// goes to a temporary file that replaces the archive only after it is
// verified to be a readable zip.
func (f *Fetcher) Fetch(ctx context.Context, year int) (string, error) {
	version, err := f.currentVersion()
	if err != nil {
		return "", err
	}
	url := f.archiveURL(version, year)
	name := config.ArchiveName(year, f.source.System)
	dst := filepath.Join(f.stagingDir, name)

	if err = os.MkdirAll(f.stagingDir, 0755); err != nil {
		return "", DownloadError(url, err)
	}

	tmp, err := os.CreateTemp(f.stagingDir, name+".*.part")
	if err != nil {
		return "", DownloadError(url, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := f.download(ctx, url, name, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", DownloadError(url, err)
	}

	zr, err := zip.OpenReader(tmpPath)
	if err != nil {
		return "", DownloadError(url, fmt.Errorf("not a valid zip archive: %w", err))
	}
	zr.Close()

	if err = os.Rename(tmpPath, dst); err != nil {
		return "", DownloadError(url, err)
	}

	slog.Info("Downloaded archive",
		"year", year,
		"url", url,
		"size", humanize.Bytes(uint64(size)),
	)
	return dst, nil
}

func (f *Fetcher) download(
	ctx context.Context,
	url, label string,
	w io.Writer,
) (int64, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New(resp.Status)
	}

	bar := pb.Full.Start64(max(resp.ContentLength, 0))
	bar.Set("prefix", label+" ")
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	return io.Copy(w, bar.NewProxyReader(resp.Body))
}
