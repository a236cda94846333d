package gallery

import "sync"

const (
	DefaultPageSize   = 20
	DefaultRootMargin = 200
)

type PaginatorOptions struct {
	// PageSize defaults to DefaultPageSize.
	PageSize int
	// RootMargin is how far ahead of the viewport, in px, the sentinel counts as visible.
	RootMargin int
	// Disabled returns the whole collection and ignores the sentinel.
	Disabled bool
	// Defer schedules the page advance, like waiting for the next animation frame.
	// Nil runs it inline.
	Defer func(func())
}

// IntersectionEntry is one sentinel observation.
type IntersectionEntry struct {
	IsIntersecting bool
}

// Paginator reveals a growing prefix of a collection as a sentinel scrolls into view.
type Paginator[T any] struct {
	opts PaginatorOptions

	mu       sync.Mutex
	items    []T
	visible  int
	loading  bool
	attached bool
}

func NewPaginator[T any](opts PaginatorOptions) *Paginator[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.RootMargin < 0 {
		opts.RootMargin = 0
	}
	if opts.Defer == nil {
		opts.Defer = func(f func()) { f() }
	}
	return &Paginator[T]{opts: opts, visible: opts.PageSize}
}

func (p *Paginator[T]) PageSize() int   { return p.opts.PageSize }
func (p *Paginator[T]) RootMargin() int { return p.opts.RootMargin }
func (p *Paginator[T]) Enabled() bool   { return !p.opts.Disabled }

// SetItems installs a new source collection. Every call resets the visible count
// to one page: a narrowed filter must never leave the count past the new length.
func (p *Paginator[T]) SetItems(items []T) {
	p.mu.Lock()
	p.items = items
	p.visible = p.opts.PageSize
	p.mu.Unlock()
}

func (p *Paginator[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

// Visible is the revealed prefix, or everything when disabled.
func (p *Paginator[T]) Visible() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts.Disabled {
		return p.items
	}
	return p.items[:min(p.visible, len(p.items))]
}

func (p *Paginator[T]) VisibleCount() int {
	return len(p.Visible())
}

func (p *Paginator[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMoreLocked()
}

func (p *Paginator[T]) hasMoreLocked() bool {
	return !p.opts.Disabled && p.visible < len(p.items)
}

func (p *Paginator[T]) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LoadMore advances by one page unless nothing remains or a load is in flight.
// It reports whether a load was started.
func (p *Paginator[T]) LoadMore() bool {
	p.mu.Lock()
	if !p.hasMoreLocked() || p.loading {
		p.mu.Unlock()
		return false
	}
	p.loading = true
	p.mu.Unlock()

	p.opts.Defer(func() {
		p.mu.Lock()
		p.visible = min(p.visible+p.opts.PageSize, len(p.items))
		p.loading = false
		p.mu.Unlock()
	})
	return true
}

// ShowPages reveals the first n pages in one step, the same as n-1 sentinel hits
// in a row. It returns the number of pages now revealed, which stops at the last
// page that holds items. A disabled paginator always reports one page.
func (p *Paginator[T]) ShowPages(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts.Disabled || n <= 1 {
		return 1
	}
	size := p.opts.PageSize
	pages := max(1, (len(p.items)+size-1)/size)
	n = min(n, pages)
	p.visible = max(p.visible, min(n*size, len(p.items)))
	return n
}

// Reset goes back to the first page.
func (p *Paginator[T]) Reset() {
	p.mu.Lock()
	p.visible = p.opts.PageSize
	p.mu.Unlock()
}

// Sentinel starts observing the sentinel. Observations are ignored while disabled
// or after the returned subscription is closed.
func (p *Paginator[T]) Sentinel() *Subscription {
	if p.opts.Disabled {
		return nil
	}
	p.mu.Lock()
	p.attached = true
	p.mu.Unlock()
	return newSubscription(func() {
		p.mu.Lock()
		p.attached = false
		p.mu.Unlock()
	})
}

// Intersect handles an observation of the sentinel.
func (p *Paginator[T]) Intersect(entry IntersectionEntry) bool {
	p.mu.Lock()
	attached := p.attached
	p.mu.Unlock()
	if !attached || !entry.IsIntersecting {
		return false
	}
	return p.LoadMore()
}

// ObserveScroll converts geometry into an observation: the sentinel intersects when
// its top edge is within RootMargin of the viewport bottom.
func (p *Paginator[T]) ObserveScroll(sentinelTop, viewportBottom int) bool {
	return p.Intersect(IntersectionEntry{IsIntersecting: sentinelTop <= viewportBottom+p.opts.RootMargin})
}
