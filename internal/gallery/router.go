package gallery

import (
	"net/url"
	"strconv"
	"sync"
)

// PhotoParam is the query parameter holding the open lightbox asset.
const PhotoParam = "photo"

// History is the browser history surface the router writes to.
type History interface {
	Push(url string)
	Replace(url string)
}

// Router mirrors the open lightbox asset into the page URL. Opening pushes an
// entry, moving inside the lightbox replaces it, closing pushes the bare URL.
type Router struct {
	path    string
	history History

	mu    sync.Mutex
	query url.Values
}

// NewRouter starts from the page's current URL.
func NewRouter(rawURL string, history History) (*Router, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	path := u.Path
	if path == "" {
		path = "/gallery"
	}
	return &Router{path: path, history: history, query: u.Query()}, nil
}

// ViewingID returns the asset id in the URL, if any.
func (r *Router) ViewingID() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return photoID(r.query)
}

func photoID(q url.Values) (int, bool) {
	raw := q.Get(PhotoParam)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (r *Router) Open(id int) {
	r.history.Push(r.set(id))
}

func (r *Router) Navigate(id int) {
	r.history.Replace(r.set(id))
}

func (r *Router) Close() {
	r.mu.Lock()
	r.query.Del(PhotoParam)
	u := r.urlLocked()
	r.mu.Unlock()
	r.history.Push(u)
}

// Sync adopts a URL the browser moved to on its own (back/forward) and returns
// the asset id it points at.
func (r *Router) Sync(rawURL string) (int, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = u.Query()
	return photoID(r.query)
}

// URL returns the current page URL.
func (r *Router) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.urlLocked()
}

func (r *Router) set(id int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query.Set(PhotoParam, strconv.Itoa(id))
	return r.urlLocked()
}

func (r *Router) urlLocked() string {
	if qs := r.query.Encode(); qs != "" {
		return r.path + "?" + qs
	}
	return r.path
}
