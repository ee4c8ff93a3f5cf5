package catalog

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"cempagamez/internal/domain"
	applog "cempagamez/internal/log"
	"cempagamez/internal/metrics"
)

type loaded struct {
	games      domain.Catalog
	source     string
	loadedAt   time.Time
	generation uint64
}

// Service owns the current catalog. Until the first load completes the catalog
// is empty and Loaded reports false.
type Service struct {
	chain     Chain
	snapshots SnapshotStore

	current atomic.Pointer[loaded]
	group   singleflight.Group
}

// NewService builds a service over chain. snapshots may be nil; when set, every
// remote load is recorded there so later failures can serve it.
func NewService(chain Chain, snapshots SnapshotStore) *Service {
	return &Service{chain: chain, snapshots: snapshots}
}

// Load runs the first load cycle. It is the same as Reload.
func (s *Service) Load(ctx context.Context) domain.Catalog {
	games, _ := s.Reload(ctx)
	return games
}

// Reload replaces the catalog wholesale. Concurrent callers share one load.
func (s *Service) Reload(ctx context.Context) (domain.Catalog, string) {
	v, _, _ := s.group.Do("reload", func() (any, error) {
		games, source := s.chain.Load(ctx)
		if source == SourceRemote && s.snapshots != nil {
			if err := s.snapshots.Replace(source, games); err != nil {
				applog.Error(nil, "catalog.snapshot.save", err, nil)
			}
		}
		l := &loaded{games: games, source: source, loadedAt: time.Now(), generation: 1}
		if prev := s.current.Load(); prev != nil {
			l.generation = prev.generation
			if !slices.Equal(prev.games, games) {
				l.generation++
			}
		}
		s.current.Store(l)

		metrics.CatalogLoads.WithLabelValues(source).Inc()
		metrics.CatalogSize.Set(float64(len(games)))
		if source == SourceRemote {
			applog.Info(nil, "catalog.load.remote", map[string]any{"games": len(games)})
		} else {
			applog.Warn(nil, "catalog.load.fallback", nil, map[string]any{"source": source, "games": len(games)})
		}
		return l, nil
	})
	l := v.(*loaded)
	return l.games, l.source
}

// Catalog returns the current catalog, empty while loading.
func (s *Service) Catalog() domain.Catalog {
	if l := s.current.Load(); l != nil {
		return l.games
	}
	return domain.Catalog{}
}

func (s *Service) Loaded() bool { return s.current.Load() != nil }

// Generation changes every time a reload yields a catalog that differs from the
// previous one. It is 0 while loading.
func (s *Service) Generation() uint64 {
	if l := s.current.Load(); l != nil {
		return l.generation
	}
	return 0
}

// Source names where the current catalog came from, "" while loading.
func (s *Service) Source() string {
	if l := s.current.Load(); l != nil {
		return l.source
	}
	return ""
}

// Run reloads every interval until ctx is done. A zero interval returns at once.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Reload(ctx)
		}
	}
}
