// Package assets preloads and caches the logo bitmaps the image
// exporter draws. Preloading is a concurrent fan-out over all logo
// URLs; individual failures degrade to "no logo for this entry" and
// never abort the run.
package assets

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	// Decoders for the formats logo hosts actually serve.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Default preloader configuration constants.
const (
	defaultConcurrency  = 8
	defaultFetchTimeout = 10 * time.Second
)

// Preloader fetches and caches decoded logo images keyed by URL.
type Preloader struct {
	client      *http.Client
	concurrency int
	log         logger.Logger

	mu     sync.RWMutex
	images map[string]image.Image
	ready  bool
}

// Option applies a configuration option to the Preloader.
type Option func(*Preloader)

// WithHTTPClient sets the client used for logo fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Preloader) {
		if c != nil {
			p.client = c
		}
	}
}

// WithConcurrency bounds the number of in-flight fetches.
func WithConcurrency(n int) Option {
	return func(p *Preloader) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the preloader.
func WithLogger(log logger.Logger) Option {
	return func(p *Preloader) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPreloader constructs a Preloader with default configuration.
func NewPreloader(opts ...Option) *Preloader {
	p := &Preloader{
		client:      &http.Client{Timeout: defaultFetchTimeout},
		concurrency: defaultConcurrency,
		images:      make(map[string]image.Image),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preload fetches and decodes every URL, caching the successes. The
// readiness gate flips only after the whole fan-out has joined, so the
// exporter either sees the full cache or refuses to run.
func (p *Preloader) Preload(ctx context.Context, urls []string) {
	if p.log == nil {
		p.log = logger.Get()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, u := range urls {
		if u == "" {
			continue
		}
		g.Go(func() error {
			img, err := p.fetch(ctx, u)
			if err != nil {
				// Tolerated: the entry simply renders without a logo.
				p.log.Warn(ctx, "logo preload failed", logger.String("url", u), logger.Error(err))
				metrics.RecordLogoFailed()
				return nil
			}
			p.mu.Lock()
			p.images[u] = img
			p.mu.Unlock()
			metrics.RecordLogoLoaded()
			return nil
		})
	}
	_ = g.Wait()

	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()
	metrics.UpdatePreloadReady(true)

	p.log.Info(ctx, "logo preload complete",
		logger.Int("requested", len(urls)),
		logger.Int("cached", p.Len()),
	)
}

func (p *Preloader) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return img, nil
}

// Ready reports whether a preload run has completed. The exporter's
// readiness gate consults this; it does not queue work behind it.
func (p *Preloader) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// Image returns the cached bitmap for url, if any.
func (p *Preloader) Image(url string) (image.Image, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	img, ok := p.images[url]
	return img, ok
}

// Len returns the number of cached images.
func (p *Preloader) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.images)
}
