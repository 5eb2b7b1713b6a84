// Package poller keeps the unread-notification count fresh while a view
// that shows it is open.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/dailyhustle/hustle/internal/client/metrics"
	"github.com/dailyhustle/hustle/internal/logging"
)

const (
	DefaultInterval = 30 * time.Second
	defaultTimeout  = 10 * time.Second
)

// Source is satisfied by *gateway.Gateway.
type Source interface {
	UnreadCount(ctx context.Context) (int, error)
}

type Options struct {
	Interval time.Duration
	// Timeout bounds each request.
	Timeout time.Duration
	// OnCount receives every successfully fetched count.
	OnCount func(int)
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

type Poller struct {
	src  Source
	opts Options
	// newTicker is replaced in tests.
	newTicker func(time.Duration) (<-chan time.Time, func())
}

func New(src Source, o Options) *Poller {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return &Poller{
		src:  src,
		opts: o,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Start fetches the count once, then once per interval, until stop is called
// or ctx is done. stop may be called any number of times; it returns after
// the loop has exited, and no request is made after that.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	ticks, stopTicker := p.newTicker(p.opts.Interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer stopTicker()

		p.poll(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
				// a tick and a stop can race; stop wins
				if ctx.Err() != nil {
					return
				}
				p.poll(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
		<-done
	}
}

func (p *Poller) poll(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	n, err := p.src.UnreadCount(reqCtx)
	if ctx.Err() != nil {
		return
	}
	p.opts.Metrics.ObservePoll(n, err)
	if err != nil {
		p.opts.Logger.Warn(ctx, "fetch unread count", "error", err)
		return
	}
	if p.opts.OnCount != nil {
		p.opts.OnCount(n)
	}
}
