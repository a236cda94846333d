package gallery

import (
	"context"
	"sync"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CloseDelay matches the overlay fade-out; the close callback fires after it.
const CloseDelay = 200 * time.Millisecond

// ScrollLocker disables page scrolling while the viewer is mounted.
type ScrollLocker interface {
	Lock()
	Unlock()
}

type nopScrollLocker struct{}

func (nopScrollLocker) Lock()   {}
func (nopScrollLocker) Unlock() {}

// NopScrollLocker is used when the host has no page to lock.
var NopScrollLocker ScrollLocker = nopScrollLocker{}

type ViewerOptions struct {
	// Current is the asset to show. It normally appears in Assets.
	Current Asset
	// Assets is the ordered sequence previous/next walk over.
	Assets []Asset

	Cache      ImageCache
	ScrollLock ScrollLocker
	Clock      Clock
	Context    context.Context
	Logger     *zap.Logger

	// OnClose runs CloseDelay after Close is requested.
	OnClose func()
	// OnNavigate receives the target id; the host updates routing and then calls SetCurrent.
	OnNavigate func(id int)
}

// Viewer is the full-screen lightbox over one asset of an ordered collection.
type Viewer struct {
	cache  ImageCache
	scroll ScrollLocker
	clock  Clock
	ctx    context.Context
	logger *zap.Logger

	onClose    func()
	onNavigate func(id int)

	mu         sync.Mutex
	assets     []Asset
	current    Asset
	showInfo   bool
	loaded     bool
	exiting    bool
	unmounted  bool
	closeTimer Timer
	attempted  map[string]struct{}

	preloads sync.WaitGroup
}

// NewViewer mounts a viewer: it locks page scroll and starts preloading neighbours.
// Call Unmount when the overlay is removed.
func NewViewer(opts ViewerOptions) *Viewer {
	v := &Viewer{
		cache:      opts.Cache,
		scroll:     opts.ScrollLock,
		clock:      opts.Clock,
		ctx:        opts.Context,
		logger:     opts.Logger,
		onClose:    opts.OnClose,
		onNavigate: opts.OnNavigate,
		assets:     opts.Assets,
		current:    opts.Current,
		showInfo:   true,
		attempted:  make(map[string]struct{}),
	}
	if v.cache == nil {
		v.cache = DefaultLedger()
	}
	if v.scroll == nil {
		v.scroll = NopScrollLocker
	}
	if v.clock == nil {
		v.clock = SystemClock
	}
	if v.ctx == nil {
		v.ctx = context.Background()
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	v.loaded = v.cachedImage(v.current)

	v.scroll.Lock()
	v.preloadAdjacent()
	return v
}

func (v *Viewer) cachedImage(a Asset) bool {
	return a.Type == domain.MediaImage && v.cache.IsCached(a.URL)
}

// Current returns the asset on screen.
func (v *Viewer) Current() Asset {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

func (v *Viewer) Position() Position {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Locate(v.assets, v.current.ID)
}

func (v *Viewer) HasPrev() bool { return v.Position().HasPrev() }
func (v *Viewer) HasNext() bool { return v.Position().HasNext() }

func (v *Viewer) ShowInfo() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.showInfo
}

func (v *Viewer) IsLoaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func (v *Viewer) IsExiting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.exiting
}

// SetCurrent moves the viewer to a new asset after the host has routed to it.
func (v *Viewer) SetCurrent(a Asset) {
	v.mu.Lock()
	v.current = a
	v.loaded = v.cachedImage(a)
	v.mu.Unlock()
	v.preloadAdjacent()
}

// SetAssets replaces the collection, e.g. when filters change while the viewer is open.
func (v *Viewer) SetAssets(assets []Asset) {
	v.mu.Lock()
	v.assets = assets
	v.mu.Unlock()
	v.preloadAdjacent()
}

func (v *Viewer) GoPrev() bool { return v.step(-1) }
func (v *Viewer) GoNext() bool { return v.step(1) }

func (v *Viewer) step(dir int) bool {
	v.mu.Lock()
	pos := Locate(v.assets, v.current.ID)
	target := pos.Next
	if dir < 0 {
		target = pos.Prev
	}
	if target == nil {
		v.mu.Unlock()
		return false
	}
	id := target.ID
	v.loaded = v.cachedImage(*target)
	v.mu.Unlock()

	if v.onNavigate != nil {
		v.onNavigate(id)
	}
	return true
}

func (v *Viewer) ToggleInfo() {
	v.mu.Lock()
	v.showInfo = !v.showInfo
	v.mu.Unlock()
}

// HandleKey applies the lightbox keyboard contract and reports whether key was handled.
func (v *Viewer) HandleKey(key string) bool {
	v.mu.Lock()
	mounted := !v.unmounted
	v.mu.Unlock()
	if !mounted {
		return false
	}

	switch key {
	case "Escape":
		v.Close()
	case "ArrowLeft":
		v.GoPrev()
	case "ArrowRight":
		v.GoNext()
	case "i":
		v.ToggleInfo()
	default:
		return false
	}
	return true
}

// Close starts the exit fade and calls OnClose once it has finished.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.exiting || v.unmounted {
		return
	}
	v.exiting = true
	onClose := v.onClose
	v.closeTimer = v.clock.AfterFunc(CloseDelay, func() {
		if onClose != nil {
			onClose()
		}
	})
}

// MarkLoaded records that the full-size media finished loading.
func (v *Viewer) MarkLoaded() {
	v.mu.Lock()
	a := v.current
	v.loaded = true
	v.mu.Unlock()
	if a.Type == domain.MediaImage {
		v.cache.MarkCached(a.URL)
	}
}

// Unmount restores page scrolling. It always runs, whatever path removed the viewer.
func (v *Viewer) Unmount() {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		return
	}
	v.unmounted = true
	if v.closeTimer != nil {
		v.closeTimer.Stop()
	}
	v.mu.Unlock()
	v.scroll.Unlock()
}

// Wait blocks until preloads started by this viewer have settled.
func (v *Viewer) Wait() {
	v.preloads.Wait()
}

// Attempted reports whether url was already handed to the preloader by this viewer.
func (v *Viewer) Attempted(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.attempted[url]
	return ok
}

func (v *Viewer) preloadAdjacent() {
	v.mu.Lock()
	pos := Locate(v.assets, v.current.ID)
	var urls []string
	for _, a := range []*Asset{pos.Prev, pos.Next} {
		if a == nil || a.Type != domain.MediaImage {
			continue
		}
		if _, seen := v.attempted[a.URL]; seen || v.cache.IsCached(a.URL) {
			continue
		}
		v.attempted[a.URL] = struct{}{}
		urls = append(urls, a.URL)
	}
	v.mu.Unlock()

	if len(urls) == 0 {
		return
	}

	v.preloads.Add(1)
	go func() {
		defer v.preloads.Done()
		g, ctx := errgroup.WithContext(v.ctx)
		g.SetLimit(2)
		for _, u := range urls {
			u := u
			g.Go(func() error {
				select {
				case <-v.cache.Preload(ctx, u):
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
		v.logger.Debug("adjacent preload settled", zap.Strings("urls", urls))
	}()
}

// Render snapshots everything the overlay needs to draw.
func (v *Viewer) Render() ViewerState {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := Describe(v.assets, v.current, v.loaded, v.showInfo)
	st.IsExiting = v.exiting
	return st
}
