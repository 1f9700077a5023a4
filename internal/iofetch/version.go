package iofetch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gnames/exiodb/pkg/lifecycle"
	"github.com/hashicorp/go-retryablehttp"
	"gopkg.in/yaml.v3"
)

// versionState is the content of the version file.
type versionState struct {
	Version   string    `yaml:"version"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

var digitsRe = regexp.MustCompile(`\d+`)

// CheckVersion resolves the concept DOI and compares the resulting record
// id with the persisted one. A new id is accepted once two consecutive
// resolutions agree, at most MaxVersionChecks resolutions are made. The
// version file is written only for an accepted id.
func (f *Fetcher) CheckVersion(
	ctx context.Context,
) (*lifecycle.VersionInfo, error) {
	state, err := f.loadState()
	if err != nil {
		return nil, err
	}
	prev := state.Version

	current, err := f.stableToken(ctx, prev)
	if err != nil {
		return nil, err
	}

	if current != prev {
		if err = f.SaveVersion(current); err != nil {
			return nil, err
		}
	}

	f.version = current
	res := lifecycle.VersionInfo{
		Previous: prev,
		Current:  current,
		Changed:  prev != current,
	}
	return &res, nil
}

// stableToken resolves the DOI until the record id matches the persisted
// one or the previous resolution.
func (f *Fetcher) stableToken(ctx context.Context, prev string) (string, error) {
	var last string
	for i := range f.source.MaxVersionChecks {
		token, err := f.resolve(ctx)
		if err != nil {
			return "", err
		}
		slog.Debug("Resolved EXIOBASE version", "version", token, "check", i+1)
		if token == prev || token == last {
			return token, nil
		}
		last = token
	}
	return "", VersionUnstableError(f.source.DOIURL, f.source.MaxVersionChecks)
}

// SaveVersion writes the version token to the version file.
func (f *Fetcher) SaveVersion(version string) error {
	state := versionState{Version: version, UpdatedAt: time.Now().UTC()}
	bs, err := yaml.Marshal(state)
	if err != nil {
		return VersionStateError(f.stateFile, err)
	}

	if err = os.MkdirAll(filepath.Dir(f.stateFile), 0755); err != nil {
		return VersionStateError(f.stateFile, err)
	}
	if err = os.WriteFile(f.stateFile, bs, 0644); err != nil {
		return VersionStateError(f.stateFile, err)
	}
	return nil
}

// currentVersion returns the version of the last check, or the persisted
// one if CheckVersion was not called.
func (f *Fetcher) currentVersion() (string, error) {
	if f.version != "" {
		return f.version, nil
	}
	state, err := f.loadState()
	if err != nil {
		return "", err
	}
	return state.Version, nil
}

func (f *Fetcher) loadState() (versionState, error) {
	var res versionState
	bs, err := os.ReadFile(f.stateFile)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, VersionStateError(f.stateFile, err)
	}
	if err = yaml.Unmarshal(bs, &res); err != nil {
		return res, VersionStateError(f.stateFile, err)
	}
	return res, nil
}

// resolve follows DOI redirects and returns the numeric record id of the
// final URL.
func (f *Fetcher) resolve(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, f.source.DOIURL, nil,
	)
	if err != nil {
		return "", VersionResolveError(f.source.DOIURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", VersionResolveError(f.source.DOIURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", VersionResolveError(
			f.source.DOIURL,
			errors.New(resp.Status),
		)
	}

	ids := digitsRe.FindAllString(resp.Request.URL.Path, -1)
	if len(ids) == 0 {
		return "", VersionResolveError(
			f.source.DOIURL,
			errors.New("no record id in "+resp.Request.URL.String()),
		)
	}
	return ids[len(ids)-1], nil
}
