package gallery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ImageCache tracks media URLs that have finished loading during this session.
type ImageCache interface {
	IsCached(url string) bool
	MarkCached(url string)
	// Preload fetches url in the background. The returned channel closes when the
	// attempt settles, immediately if url is already cached. Failures are swallowed.
	Preload(ctx context.Context, url string) <-chan struct{}
}

// Preloader performs the actual fetch of a media resource.
type Preloader interface {
	Load(ctx context.Context, url string) error
}

type PreloaderFunc func(ctx context.Context, url string) error

func (f PreloaderFunc) Load(ctx context.Context, url string) error { return f(ctx, url) }

// HTTPPreloader fully downloads a resource and discards the body.
type HTTPPreloader struct {
	Client *http.Client
}

func (p HTTPPreloader) Load(ctx context.Context, url string) error {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build preload request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("preload %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("preload %s: status %d", url, resp.StatusCode)
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("preload %s: %w", url, err)
	}
	return nil
}

// Ledger is a grow-only set of loaded URLs shared by every grid and viewer.
type Ledger struct {
	mu        sync.RWMutex
	urls      map[string]struct{}
	preloader Preloader
	logger    *zap.Logger
}

func NewLedger(preloader Preloader, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if preloader == nil {
		preloader = HTTPPreloader{}
	}
	return &Ledger{
		urls:      make(map[string]struct{}),
		preloader: preloader,
		logger:    logger,
	}
}

var (
	defaultLedger     *Ledger
	defaultLedgerOnce sync.Once
)

// DefaultLedger returns the process-wide ledger.
func DefaultLedger() *Ledger {
	defaultLedgerOnce.Do(func() {
		defaultLedger = NewLedger(HTTPPreloader{Client: &http.Client{Timeout: 30 * time.Second}}, nil)
	})
	return defaultLedger
}

func (l *Ledger) IsCached(url string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.urls[url]
	return ok
}

func (l *Ledger) MarkCached(url string) {
	if url == "" {
		return
	}
	l.mu.Lock()
	l.urls[url] = struct{}{}
	l.mu.Unlock()
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.urls)
}

func (l *Ledger) Preload(ctx context.Context, url string) <-chan struct{} {
	done := make(chan struct{})
	if l.IsCached(url) {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		if err := l.preloader.Load(ctx, url); err != nil {
			l.logger.Debug("preload failed", zap.String("url", url), zap.Error(err))
			return
		}
		l.MarkCached(url)
	}()
	return done
}
