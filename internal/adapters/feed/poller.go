package feed

import (
	"context"
	"time"

	"github.com/okian/gridiron/pkg/logger"
)

// Default poller configuration constants.
const (
	defaultPollInterval = 60 * time.Second
)

// Poller re-fetches standings on a fixed interval. Each tick is an
// independent, idempotent read; there is no backpressure and no
// cancellation beyond the context.
type Poller struct {
	interval time.Duration
	log      logger.Logger
	refresh  func(ctx context.Context)
}

// PollerOption applies a configuration option to the Poller.
type PollerOption func(*Poller)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPollerLogger sets a custom logger for the poller.
func WithPollerLogger(log logger.Logger) PollerOption {
	return func(p *Poller) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPoller constructs a poller that invokes refresh each tick.
func NewPoller(refresh func(ctx context.Context), opts ...PollerOption) *Poller {
	p := &Poller{
		interval: defaultPollInterval,
		refresh:  refresh,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ticks until the context is done. Call in a goroutine.
func (p *Poller) Run(ctx context.Context) {
	if p.log == nil {
		p.log = logger.Get()
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info(ctx, "standings poller started", logger.Any("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.log.Info(ctx, "standings poller stopped")
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}
