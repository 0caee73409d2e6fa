package registry

// Signal is a synchronous, ordered list of observers.
type Signal[T any] struct {
	next     int
	handlers []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a func that removes it again.
// Calling the returned func more than once is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.next++
	id := s.next
	s.handlers = append(s.handlers, subscription[T]{id: id, fn: fn})
	return func() {
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler in subscription order before returning.
// Handlers added or removed during Emit take effect on the next call.
func (s *Signal[T]) Emit(v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := make([]subscription[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len reports the number of subscribed handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}
