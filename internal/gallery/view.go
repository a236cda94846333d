package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/zap"
)

// DefaultGalleryPageSize is the number of cards revealed per page on the gallery.
const DefaultGalleryPageSize = 9

type GalleryViewOptions struct {
	Assets []Asset
	// PageSize <= 0 disables infinite scroll.
	PageSize      int
	ViewportWidth int
	Config        MasonryConfig
	Cache         ImageCache
	Router        *Router
	ScrollLock    ScrollLocker
	Clock         Clock
	Navigation    NavigationTiming
	Context       context.Context
	Logger        *zap.Logger
}

// AssetCard is a grid card showing one asset.
type AssetCard struct {
	Asset Asset
	Card  *Card
	cache ImageCache

	mu     sync.Mutex
	loaded bool
}

// HandleLoad is called when the thumbnail finished loading.
func (c *AssetCard) HandleLoad() {
	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()
	if c.Asset.Type == domain.MediaImage {
		c.cache.MarkCached(c.Asset.URL)
	}
	c.Card.Handle().OnImageLoad()
}

// HandleError leaves the card on its skeleton; failed media is never retried.
func (c *AssetCard) HandleError() {}

func (c *AssetCard) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

func (c *AssetCard) ShowSkeleton() bool { return !c.Loaded() }

// VisibleTags returns at most three tags plus the count of hidden ones.
func (c *AssetCard) VisibleTags() ([]string, int) {
	tags := c.Asset.Tags
	if len(tags) <= 3 {
		return tags, 0
	}
	return tags[:3], len(tags) - 3
}

// GalleryView wires the filter, paginator, layout engine and viewer together. The
// grid and the viewer always share the same filtered slice, so previous/next in
// the lightbox walk exactly what the grid is built from, including items not yet
// revealed by pagination.
type GalleryView struct {
	opts   GalleryViewOptions
	engine *Engine
	pager  *Paginator[Asset]
	router *Router
	logger *zap.Logger
	skip   bool

	mu       sync.Mutex
	all      []Asset
	filter   FilterState
	filtered []Asset
	cards    map[int]*AssetCard
	order    []int
	viewer   *Viewer
	sentinel *Subscription
}

func NewGalleryView(opts GalleryViewOptions) *GalleryView {
	if opts.Config == (MasonryConfig{}) {
		opts.Config = DefaultMasonryConfig
	}
	if opts.Cache == nil {
		opts.Cache = DefaultLedger()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Router == nil {
		opts.Router, _ = NewRouter("/gallery", discardHistory{})
	}

	v := &GalleryView{
		opts:   opts,
		engine: NewEngine(opts.Config, opts.ViewportWidth, opts.Logger),
		pager: NewPaginator[Asset](PaginatorOptions{
			PageSize: opts.PageSize,
			Disabled: opts.PageSize <= 0,
		}),
		router: opts.Router,
		logger: opts.Logger,
		skip:   IsBackNavigation(opts.Navigation),
		all:    opts.Assets,
		filter: FilterState{MediaType: MediaAll},
		cards:  make(map[int]*AssetCard),
	}
	v.sentinel = v.pager.Sentinel()
	v.refresh()

	if id, ok := v.router.ViewingID(); ok {
		v.mountViewer(id)
	}
	return v
}

// SkipEntranceAnimation is true when the page was reached with back/forward.
func (v *GalleryView) SkipEntranceAnimation() bool { return v.skip }

func (v *GalleryView) Engine() *Engine { return v.engine }

func (v *GalleryView) Ready() bool { return v.engine.Ready() }

func (v *GalleryView) Layout() Layout { return v.engine.Layout() }

func (v *GalleryView) Filter() FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

func (v *GalleryView) Filtered() []Asset {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filtered
}

func (v *GalleryView) Visible() []Asset { return v.pager.Visible() }

func (v *GalleryView) HasMore() bool { return v.pager.HasMore() }

// Empty is true when no asset passes the filters.
func (v *GalleryView) Empty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.filtered) == 0
}

// Cards returns the cards of the visible assets, in grid order.
func (v *GalleryView) Cards() []*AssetCard {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*AssetCard, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.cards[id])
	}
	return out
}

func (v *GalleryView) SetAssets(assets []Asset) {
	v.mu.Lock()
	v.all = assets
	v.mu.Unlock()
	v.refresh()
}

func (v *GalleryView) SetSearch(s string) {
	v.mu.Lock()
	v.filter.Search = s
	v.mu.Unlock()
	v.refresh()
}

func (v *GalleryView) ToggleTag(tag string) {
	v.mu.Lock()
	v.filter = v.filter.ToggleTag(tag)
	v.mu.Unlock()
	v.refresh()
}

func (v *GalleryView) SetMediaType(mt MediaFilter) {
	v.mu.Lock()
	v.filter.MediaType = mt
	v.mu.Unlock()
	v.refresh()
}

func (v *GalleryView) ClearFilters() {
	v.mu.Lock()
	v.filter = v.filter.Clear()
	v.mu.Unlock()
	v.refresh()
}

// Intersect forwards a sentinel observation and lays out any newly revealed cards.
func (v *GalleryView) Intersect(entry IntersectionEntry) bool {
	if !v.pager.Intersect(entry) {
		return false
	}
	v.rebuildCells()
	return true
}

// ShowPages reveals the first n pages with a single layout pass.
func (v *GalleryView) ShowPages(n int) int {
	reached := v.pager.ShowPages(n)
	v.rebuildCells()
	return reached
}

// Resize handles a viewport change; card heights depend on the viewport class.
func (v *GalleryView) Resize(width int) {
	v.engine.Resize(width)
	v.rebuildCells()
}

func (v *GalleryView) refresh() {
	v.mu.Lock()
	v.filtered = Apply(v.all, v.filter)
	filtered := v.filtered
	viewer := v.viewer
	v.mu.Unlock()

	v.pager.SetItems(filtered)
	if viewer != nil {
		viewer.SetAssets(filtered)
	}
	v.rebuildCells()
}

func (v *GalleryView) rebuildCells() {
	visible := v.pager.Visible()
	mobile := v.engine.IsMobile()

	v.mu.Lock()
	cells := make([]Cell, 0, len(visible))
	order := make([]int, 0, len(visible))
	for _, a := range visible {
		h := CardHeight(a.ID, mobile)
		card, ok := v.cards[a.ID]
		if !ok || card.Card.Height() != h {
			card = v.newAssetCard(a, h)
			v.cards[a.ID] = card
		}
		order = append(order, a.ID)
		cells = append(cells, Cell{Key: a.ID, ContentHeight: &h})
	}
	v.order = order
	v.mu.Unlock()

	v.engine.SetCells(cells)
}

func (v *GalleryView) newAssetCard(a Asset, height int) *AssetCard {
	id := a.ID
	card := v.engine.NewCard(height, func() { v.OpenViewer(id) })
	if v.opts.Clock != nil {
		card.WithClock(v.opts.Clock)
	}
	return &AssetCard{Asset: a, Card: card, cache: v.opts.Cache, loaded: v.skip}
}

// Viewer returns the open viewer, or nil.
func (v *GalleryView) Viewer() *Viewer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewer
}

// OpenViewer opens the lightbox on id and pushes a history entry.
func (v *GalleryView) OpenViewer(id int) bool {
	if !v.mountViewer(id) {
		return false
	}
	v.router.Open(id)
	return true
}

func (v *GalleryView) mountViewer(id int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	asset, ok := Find(v.all, id)
	if !ok {
		return false
	}
	if current := v.viewer; current != nil {
		if !current.IsExiting() {
			current.SetCurrent(asset)
			return true
		}
		// A viewer still fading out is replaced, so its pending close cannot
		// clear the URL that was just reached.
		v.viewer = nil
		current.Unmount()
	}
	var viewer *Viewer
	viewer = NewViewer(ViewerOptions{
		Current:    asset,
		Assets:     v.filtered,
		Cache:      v.opts.Cache,
		ScrollLock: v.opts.ScrollLock,
		Clock:      v.opts.Clock,
		Context:    v.opts.Context,
		Logger:     v.logger,
		OnClose:    func() { v.finishClose(viewer) },
		OnNavigate: v.NavigateViewer,
	})
	v.viewer = viewer
	return true
}

// NavigateViewer moves the open lightbox to id, replacing the history entry.
func (v *GalleryView) NavigateViewer(id int) {
	v.mu.Lock()
	asset, ok := Find(v.all, id)
	viewer := v.viewer
	v.mu.Unlock()
	if !ok || viewer == nil {
		return
	}
	v.router.Navigate(id)
	viewer.SetCurrent(asset)
}

// CloseViewer starts the lightbox exit; the URL is cleared once the fade is done.
func (v *GalleryView) CloseViewer() {
	if viewer := v.Viewer(); viewer != nil {
		viewer.Close()
	}
}

// HandleKey forwards a key press to the open viewer.
func (v *GalleryView) HandleKey(key string) bool {
	viewer := v.Viewer()
	if viewer == nil {
		return false
	}
	return viewer.HandleKey(key)
}

func (v *GalleryView) finishClose(closing *Viewer) {
	v.mu.Lock()
	if v.viewer != closing {
		v.mu.Unlock()
		return
	}
	v.viewer = nil
	v.mu.Unlock()
	closing.Unmount()
	v.router.Close()
}

func (v *GalleryView) unmountViewer() {
	v.mu.Lock()
	viewer := v.viewer
	v.viewer = nil
	v.mu.Unlock()
	if viewer != nil {
		viewer.Unmount()
	}
}

// PopState follows a back/forward move of the browser.
func (v *GalleryView) PopState(rawURL string) {
	id, ok := v.router.Sync(rawURL)
	if !ok {
		v.unmountViewer()
		return
	}
	v.mountViewer(id)
}

// Summary is the results line above the grid.
func (v *GalleryView) Summary() string {
	v.mu.Lock()
	total, filtered, active := len(v.all), len(v.filtered), v.filter.HasActiveFilters()
	v.mu.Unlock()

	if v.pager.Enabled() && v.pager.HasMore() {
		s := fmt.Sprintf("%d of %d", v.pager.VisibleCount(), filtered)
		if active {
			s += fmt.Sprintf(" (%d total)", total)
		}
		return s
	}
	s := fmt.Sprintf("%d", filtered)
	if active {
		s += fmt.Sprintf(" / %d", total)
	}
	if filtered == 1 {
		return s + " item"
	}
	return s + " items"
}

// Close tears down the sentinel observation and any open viewer.
func (v *GalleryView) Close() {
	v.sentinel.Close()
	v.unmountViewer()
}

type discardHistory struct{}

func (discardHistory) Push(string)    {}
func (discardHistory) Replace(string) {}
