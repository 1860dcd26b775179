// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/gridiron/internal/adapters/assets"
	"github.com/okian/gridiron/internal/adapters/export"
	"github.com/okian/gridiron/internal/adapters/feed"
	"github.com/okian/gridiron/internal/adapters/storage"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/editor"
	"github.com/okian/gridiron/pkg/logger"
)

// Storage backend names accepted by the service.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Service owns the two builder editors and the adapters behind them.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     storage.Store
	feeds     *feed.Client
	preloader *assets.Preloader
	exporter  *export.Exporter
	editors   map[string]*editor.Editor
	pools     map[string][]model.Entity

	// Configuration
	feedBaseURL        string
	storageBackend     string
	storagePath        string
	pollInterval       time.Duration
	preloadConcurrency int
	brandURL           string
	maxSaved           int

	// State
	started bool
	cancel  context.CancelFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithFeedBaseURL points the feed client at the upstream API.
func WithFeedBaseURL(u string) Option {
	return func(s *Service) {
		s.feedBaseURL = u
	}
}

// WithStorageBackend selects the persistence backend and its path.
func WithStorageBackend(backend, path string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storageBackend = backend
		}
		s.storagePath = path
	}
}

// WithPollInterval sets the standings poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithPreloadConcurrency bounds the logo preload fan-out.
func WithPreloadConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.preloadConcurrency = n
		}
	}
}

// WithBrandURL sets the footer brand line on exported images.
func WithBrandURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.brandURL = u
		}
	}
}

// WithMaxSaved bounds the named-save list per builder.
func WithMaxSaved(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSaved = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storageBackend:     BackendMemory,
		pollInterval:       60 * time.Second,
		preloadConcurrency: 8,
		brandURL:           "gridiron.example.com",
		editors:            make(map[string]*editor.Editor),
		pools:              make(map[string][]model.Entity),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the adapters, seeds both builders from the feeds
// (bundled fallbacks make this total), and kicks off the logo preload
// and the standings poller in the background.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting ranking builder service...")

	store, err := s.openStore()
	if err != nil {
		return fmt.Errorf("open storage backend %q: %w", s.storageBackend, err)
	}
	s.store = store

	s.feeds = feed.NewClient(
		feed.WithBaseURL(s.feedBaseURL),
		feed.WithLogger(s.logger),
	)
	s.preloader = assets.NewPreloader(
		assets.WithConcurrency(s.preloadConcurrency),
		assets.WithLogger(s.logger),
	)
	s.exporter = export.New(
		export.WithLogoSource(s.preloader),
		export.WithBrandURL(s.brandURL),
		export.WithLogger(s.logger),
	)

	// Seed both builders. The feed client falls back to bundled data on
	// any failure, so loading cannot leave a builder empty. The second
	// players return is the add-entry pool; the team pool is the full
	// 32-team reference so removed teams can be re-added.
	top100, pool := s.feeds.Players(ctx)
	teams := s.feeds.Teams(ctx)
	s.pools["players"] = pool
	s.pools["teams"] = teams

	playersEd := s.newEditor(editor.PlayersConfig())
	if err := playersEd.BeginLoad(); err == nil {
		if err := playersEd.CompleteLoad(ctx, top100); err != nil {
			return err
		}
	}
	s.editors["players"] = playersEd

	teamsEd := s.newEditor(editor.TeamsConfig())
	if err := teamsEd.BeginLoad(); err == nil {
		if err := teamsEd.CompleteLoad(ctx, teams); err != nil {
			return err
		}
	}
	s.editors["teams"] = teamsEd

	// Background work: logo preload fan-out and standings polling.
	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	urls := make([]string, 0, len(top100)+len(teams))
	for _, e := range top100 {
		urls = append(urls, e.LogoURL)
	}
	for _, e := range teams {
		urls = append(urls, e.LogoURL)
	}
	go s.preloader.Preload(bgCtx, urls)

	poller := feed.NewPoller(s.refreshStandings,
		feed.WithInterval(s.pollInterval),
		feed.WithPollerLogger(s.logger),
	)
	go poller.Run(bgCtx)

	s.started = true
	s.logger.Info(ctx, "ranking builder service started",
		logger.String("storage", s.storageBackend),
		logger.Int("players", len(top100)),
		logger.Int("teams", len(teams)),
	)
	return nil
}

func (s *Service) openStore() (storage.Store, error) {
	capOpt := []storage.Option{}
	if s.maxSaved > 0 {
		capOpt = append(capOpt, storage.WithMaxPerKey(s.maxSaved))
	}
	switch s.storageBackend {
	case BackendFile:
		return storage.NewFileStore(s.storagePath, capOpt...)
	case BackendSQLite:
		return storage.NewSQLiteStore(s.storagePath, capOpt...)
	case BackendMemory:
		return storage.NewMemoryStore(capOpt...), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", s.storageBackend)
	}
}

func (s *Service) newEditor(cfg editor.BuilderConfig) *editor.Editor {
	return editor.New(cfg, s.store, s.exporter, editor.WithLogger(s.logger))
}

// refreshStandings re-fetches standings each poll tick and refreshes
// the team builder's canonical default order. The user's current list
// is never touched.
func (s *Service) refreshStandings(ctx context.Context) {
	s.mu.RLock()
	ed, ok := s.editors["teams"]
	feeds := s.feeds
	s.mu.RUnlock()
	if !ok || feeds == nil {
		return
	}
	ed.SetDefaults(feeds.Teams(ctx))
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping ranking builder service...")

	if s.cancel != nil {
		s.cancel()
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "ranking builder service stopped")
}

// Editor returns the builder editor for kind ("players" or "teams").
func (s *Service) Editor(kind string) (*editor.Editor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ed, ok := s.editors[kind]
	if !ok {
		return nil, ErrUnknownBuilder
	}
	return ed, nil
}

// Pool returns the add-entry candidate pool for kind. Entries already
// on the list are not filtered out; that is the caller's concern.
func (s *Service) Pool(kind string) ([]model.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[kind]
	if !ok {
		return nil, ErrUnknownBuilder
	}
	return pool, nil
}

// Builders lists the registered builder kinds.
func (s *Service) Builders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.editors))
	for k := range s.editors {
		out = append(out, k)
	}
	return out
}

// LogosReady reports whether the logo preload has completed.
func (s *Service) LogosReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preloader != nil && s.preloader.Ready()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"storage":    s.storageBackend,
		"logosReady": s.preloader != nil && s.preloader.Ready(),
	}
	for kind, ed := range s.editors {
		stats[kind] = ed.Stats()
	}
	return stats
}
