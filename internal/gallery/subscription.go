package gallery

import "sync"

// Subscription pairs an observer registration with its teardown. Close is idempotent.
type Subscription struct {
	once   sync.Once
	cancel func()
	closed chan struct{}
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel, closed: make(chan struct{})}
}

func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		close(s.closed)
	})
}

// Done is closed once the subscription has been torn down.
func (s *Subscription) Done() <-chan struct{} {
	return s.closed
}
