package application

import (
	"context"
	"fmt"

	"github.com/moraleja/portfolio/internal/domain"
	"github.com/moraleja/portfolio/internal/gallery"
	"go.uber.org/zap"
)

const (
	listingVisible = "visible"
	listingAll     = "all"

	// DefaultViewportWidth is assumed when the client does not report one.
	DefaultViewportWidth = 1280
	// MaxPageSize bounds the page size a client may ask for.
	MaxPageSize = 100
)

type GalleryService struct {
	repo     domain.AssetRepository
	settings *ConfigService
	cache    *ListingCache
	ledger   gallery.ImageCache
	logger   *zap.Logger
}

func NewGalleryService(repo domain.AssetRepository, settings *ConfigService, cache *ListingCache, ledger gallery.ImageCache, logger *zap.Logger) *GalleryService {
	if ledger == nil {
		ledger = gallery.DefaultLedger()
	}
	return &GalleryService{repo: repo, settings: settings, cache: cache, ledger: ledger, logger: logger}
}

// Assets returns the gallery listing, newest first, from cache when possible.
func (s *GalleryService) Assets(ctx context.Context, onlyVisible bool) ([]domain.GalleryAsset, error) {
	key := listingAll
	if onlyVisible {
		key = listingVisible
	}
	if assets, ok := s.cache.Get(key); ok {
		return assets, nil
	}
	assets, err := s.repo.ListGallery(ctx, onlyVisible)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, assets)
	return assets, nil
}

// Invalidate drops cached listings. Project edits call it since titles and
// slugs are joined into every gallery record.
func (s *GalleryService) Invalidate() {
	s.cache.Clear()
}

type GalleryQuery struct {
	Search string
	Tags   []string
	Type   gallery.MediaFilter
	// Page is 1-based. Pages past the end return no items.
	Page int
	// PageSize overrides the configured page size when positive.
	PageSize      int
	ViewportWidth int
	Navigation    gallery.NavigationTiming
}

// GalleryCard is one grid card, already snapped to the masonry rows.
type GalleryCard struct {
	gallery.Asset
	Alt           string   `json:"alt"`
	ProjectLink   string   `json:"projectLink,omitempty"`
	VisibleTags   []string `json:"visibleTags"`
	HiddenTags    int      `json:"hiddenTags"`
	DesiredHeight int      `json:"desiredHeight"`
	RowSpan       int      `json:"rowSpan"`
	SnappedHeight int      `json:"snappedHeight"`
	Loaded        bool     `json:"loaded"`
}

type GridMetrics struct {
	RowHeight int `json:"rowHeight"`
	Gap       int `json:"gap"`
	Columns   int `json:"columns"`
}

type GalleryPage struct {
	Items         []GalleryCard       `json:"items"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"pageSize"`
	HasMore       bool                `json:"hasMore"`
	Total         int                 `json:"total"`
	FilteredTotal int                 `json:"filteredTotal"`
	Visible       int                 `json:"visible"`
	Summary       string              `json:"summary"`
	Empty         bool                `json:"empty"`
	HasFilters    bool                `json:"hasFilters"`
	SkipAnimation bool                `json:"skipAnimation"`
	Grid          GridMetrics         `json:"grid"`
	Filter        gallery.FilterState `json:"filter"`
}

// Page renders one page of the public gallery. It builds the same view the
// browser does: filters applied, pages revealed up to the requested one, layout
// snapped for the reported viewport.
func (s *GalleryService) Page(ctx context.Context, q GalleryQuery) (*GalleryPage, error) {
	assets, err := s.Assets(ctx, true)
	if err != nil {
		return nil, err
	}
	if q.PageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size must be at most %d", domain.ErrInvalidInput, MaxPageSize)
	}
	size := q.PageSize
	if size <= 0 {
		if size, err = s.settings.GalleryPageSize(ctx); err != nil {
			return nil, err
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.ViewportWidth <= 0 {
		q.ViewportWidth = DefaultViewportWidth
	}

	view := gallery.NewGalleryView(gallery.GalleryViewOptions{
		Assets:        assets,
		PageSize:      size,
		ViewportWidth: q.ViewportWidth,
		Cache:         s.ledger,
		Navigation:    q.Navigation,
		Context:       ctx,
		Logger:        s.logger,
	})
	defer view.Close()

	if q.Search != "" {
		view.SetSearch(q.Search)
	}
	for _, t := range q.Tags {
		if !view.Filter().IsTagSelected(t) {
			view.ToggleTag(t)
		}
	}
	if q.Type != "" {
		view.SetMediaType(q.Type)
	}

	reached := view.ShowPages(q.Page)

	layout := view.Layout()
	placements := make(map[int]gallery.Descriptor, len(layout.Placements))
	for _, p := range layout.Placements {
		placements[p.Key] = p.Descriptor
	}

	cards := view.Cards()
	start := 0
	if size > 0 {
		start = (q.Page - 1) * size
	}
	items := []GalleryCard{}
	if reached == q.Page && start < len(cards) {
		items = make([]GalleryCard, 0, len(cards)-start)
		for _, c := range cards[start:] {
			tags, hidden := c.VisibleTags()
			card := GalleryCard{
				Asset:       c.Asset,
				Alt:         gallery.AltText(c.Asset),
				VisibleTags: tags,
				HiddenTags:  hidden,
				Loaded:      c.Loaded(),
			}
			if link, ok := gallery.ProjectLink(c.Asset); ok {
				card.ProjectLink = link
			}
			if d, ok := placements[c.Asset.ID]; ok {
				card.DesiredHeight = d.DesiredHeight
				card.RowSpan = d.RowSpan
				card.SnappedHeight = d.SnappedHeight
			}
			items = append(items, card)
		}
	}

	filter := view.Filter()
	engine := view.Engine()
	return &GalleryPage{
		Items:         items,
		Page:          q.Page,
		PageSize:      size,
		HasMore:       view.HasMore(),
		Total:         len(assets),
		FilteredTotal: len(view.Filtered()),
		Visible:       len(view.Visible()),
		Summary:       view.Summary(),
		Empty:         view.Empty(),
		HasFilters:    filter.HasActiveFilters(),
		SkipAnimation: view.SkipEntranceAnimation(),
		Grid:          GridMetrics{RowHeight: engine.Config().RowHeight, Gap: engine.Gap(), Columns: engine.Columns()},
		Filter:        filter,
	}, nil
}

// Tags returns the filter bar: predefined tags in use first, then the rest.
func (s *GalleryService) Tags(ctx context.Context) ([]string, error) {
	available, err := s.repo.DistinctTags(ctx, true)
	if err != nil {
		return nil, err
	}
	predefined, err := s.settings.PredefinedTags(ctx)
	if err != nil {
		return nil, err
	}
	return gallery.AvailableTags(available, predefined), nil
}

// Viewer describes the lightbox on id inside the filtered sequence, so
// previous/next match what the grid is built from.
func (s *GalleryService) Viewer(ctx context.Context, id int, filter gallery.FilterState, showInfo bool) (*gallery.ViewerState, error) {
	assets, err := s.Assets(ctx, true)
	if err != nil {
		return nil, err
	}
	current, ok := gallery.Find(assets, id)
	if !ok {
		return nil, fmt.Errorf("gallery asset %d: %w", id, domain.ErrNotFound)
	}
	filtered := gallery.Apply(assets, filter)
	loaded := current.Type == domain.MediaImage && s.ledger.IsCached(current.URL)
	st := gallery.Describe(filtered, current, loaded, showInfo)
	return &st, nil
}

// AssetContext is one asset with the full sequence it belongs to.
type AssetContext struct {
	Asset  domain.GalleryAsset   `json:"asset"`
	Assets []domain.GalleryAsset `json:"assets"`
}

// WithContext returns id together with every asset, visible or not, for the
// admin preview.
func (s *GalleryService) WithContext(ctx context.Context, id int) (*AssetContext, error) {
	assets, err := s.Assets(ctx, false)
	if err != nil {
		return nil, err
	}
	current, ok := gallery.Find(assets, id)
	if !ok {
		return nil, fmt.Errorf("gallery asset %d: %w", id, domain.ErrNotFound)
	}
	return &AssetContext{Asset: current, Assets: assets}, nil
}
