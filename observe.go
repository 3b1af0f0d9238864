package menufig

// Signal is a minimal publish/subscribe value stream. Listeners fire
// synchronously, in subscription order, on the dispatching goroutine;
// the session relies on its host delivering events one at a time, so
// there is no locking here.
type Signal[T any] struct {
	listeners []func(T)
}

// Subscribe adds a listener and returns an unsubscribe function.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder
		s.listeners[idx] = nil
	}
}

// Emit delivers v to every live listener.
func (s *Signal[T]) Emit(v T) {
	for _, fn := range s.listeners {
		if fn != nil {
			fn(v)
		}
	}
}
