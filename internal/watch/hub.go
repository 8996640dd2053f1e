package watch

import "sync"

// Hub delivers change notifications for a key (here: a user id whose
// memberships changed) to live subscribers. Notifications are coalescing
// signals; subscribers re-read state on each one.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

// Subscription is a cancellable stream handle. C receives a signal per
// change batch; Close must be called by the owner when done, otherwise
// stale subscribers keep receiving notifications for an identity that is
// no longer current.
type Subscription struct {
	C    chan struct{}
	hub  *Hub
	key  string
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a new subscriber for key. The returned handle is
// owned by the caller.
func (h *Hub) Subscribe(key string) *Subscription {
	sub := &Subscription{
		C:   make(chan struct{}, 1),
		hub: h,
		key: key,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[*Subscription]struct{})
	}
	h.subs[key][sub] = struct{}{}
	return sub
}

// Publish signals all subscribers for key. Signals coalesce: a subscriber
// that has not drained its pending signal does not queue another.
func (h *Hub) Publish(key string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[key] {
		select {
		case sub.C <- struct{}{}:
		default:
		}
	}
}

// Close removes the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if set, ok := s.hub.subs[s.key]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(s.hub.subs, s.key)
			}
		}
	})
}
