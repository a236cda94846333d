package gallery

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeClock only fires timers from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

type countingLocker struct {
	mu             sync.Mutex
	locks, unlocks int
}

func (l *countingLocker) Lock() {
	l.mu.Lock()
	l.locks++
	l.mu.Unlock()
}

func (l *countingLocker) Unlock() {
	l.mu.Lock()
	l.unlocks++
	l.mu.Unlock()
}

func (l *countingLocker) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locks, l.unlocks
}

type recordingHistory struct {
	mu      sync.Mutex
	entries []string
	ops     []string
}

func (h *recordingHistory) Push(u string) {
	h.mu.Lock()
	h.entries = append(h.entries, u)
	h.ops = append(h.ops, "push "+u)
	h.mu.Unlock()
}

func (h *recordingHistory) Replace(u string) {
	h.mu.Lock()
	if len(h.entries) == 0 {
		h.entries = append(h.entries, u)
	} else {
		h.entries[len(h.entries)-1] = u
	}
	h.ops = append(h.ops, "replace "+u)
	h.mu.Unlock()
}

func (h *recordingHistory) Ops() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.ops...)
}

// countingPreloader succeeds for every URL and records what it was asked for.
type countingPreloader struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newCountingPreloader() *countingPreloader {
	return &countingPreloader{calls: make(map[string]int), fail: make(map[string]bool)}
}

func (p *countingPreloader) Load(_ context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[url]++
	if p.fail[url] {
		return context.DeadlineExceeded
	}
	return nil
}

func (p *countingPreloader) Calls(url string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[url]
}

func strPtr(s string) *string { return &s }

func image(id int, tags ...string) Asset {
	return Asset{ID: id, URL: "https://cdn.test/" + strconv.Itoa(id) + ".jpg", Type: domain.MediaImage, Tags: tags}
}

func video(id int, tags ...string) Asset {
	return Asset{ID: id, URL: "https://cdn.test/" + strconv.Itoa(id) + ".mp4", Type: domain.MediaVideo, Tags: tags}
}
