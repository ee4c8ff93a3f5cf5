package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cempagamez/internal/domain"
	applog "cempagamez/internal/log"
)

var (
	ErrStatus        = errors.New("catalog endpoint returned non-success status")
	ErrNotArray      = errors.New("catalog payload is not a JSON array")
	ErrEmptySnapshot = errors.New("no catalog snapshot stored")
)

const (
	SourceRemote   = "remote"
	SourceSnapshot = "snapshot"
	SourceDefault  = "default"
)

// Source is one step of the catalog fallback chain.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (domain.Catalog, error)
}

// Getter is the slice of an HTTP client the remote source needs.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// RemoteSource reads the catalog API.
type RemoteSource struct {
	URL    string
	Client Getter
}

func (s RemoteSource) Name() string { return SourceRemote }

func (s RemoteSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	resp, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return Decode(body)
}

// Decode parses a remote payload and normalizes it.
func Decode(body []byte) (domain.Catalog, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var records []RawRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return Normalize(records), nil
}

// SnapshotStore is implemented by repos.GameRepo.
type SnapshotStore interface {
	List() (domain.Catalog, error)
	Replace(source string, games domain.Catalog) error
}

// SnapshotSource serves the last catalog that was loaded from the remote API.
// It is only part of the chain when CATALOG_SERVE_SNAPSHOT is set; by default a
// failed remote load goes straight to the bundled games.
type SnapshotSource struct {
	Store SnapshotStore
}

func (s SnapshotSource) Name() string { return SourceSnapshot }

func (s SnapshotSource) Fetch(context.Context) (domain.Catalog, error) {
	games, err := s.Store.List()
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrEmptySnapshot
	}
	return games, nil
}

// DefaultSource serves the bundled catalog and never fails.
type DefaultSource struct{}

func (DefaultSource) Name() string { return SourceDefault }

func (DefaultSource) Fetch(context.Context) (domain.Catalog, error) { return Defaults(), nil }

// Chain tries its sources in order and returns the first catalog that loads.
// Failures are logged and never returned; the bundled catalog is the last resort.
type Chain []Source

func (ch Chain) Load(ctx context.Context) (domain.Catalog, string) {
	for _, src := range ch {
		games, err := src.Fetch(ctx)
		if err == nil {
			return games, src.Name()
		}
		applog.Warn(nil, "catalog.source.fail", err, map[string]any{"source": src.Name()})
	}
	return Defaults(), SourceDefault
}
