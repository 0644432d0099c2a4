package cart

import (
	"sync"

	"vtex-storefront/internal/domain/model"
)

// State holds the latest cart snapshot and fans it out to subscribers.
type State struct {
	mu      sync.RWMutex
	cart    model.Cart
	loading bool
	err     error
	subs    map[int]chan model.Cart
	nextSub int
}

func NewState() *State {
	return &State{subs: make(map[int]chan model.Cart)}
}

func (s *State) Snapshot() model.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the error of the last mutation, nil after a success.
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Subscribe returns a channel that receives every new snapshot. A slow
// subscriber only sees the latest one. The returned func unsubscribes and
// closes the channel.
func (s *State) Subscribe() (<-chan model.Cart, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan model.Cart, 1)
	if s.subs == nil {
		s.subs = make(map[int]chan model.Cart)
	}
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

func (s *State) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *State) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = err
	s.mu.Unlock()
}

func (s *State) set(cart model.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = cart
	s.loading = false
	s.err = nil
	for _, ch := range s.subs {
		publish(ch, cart)
	}
}

// closeAll drops every subscriber.
func (s *State) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publish replaces an undelivered snapshot with cart.
func publish(ch chan model.Cart, cart model.Cart) {
	select {
	case ch <- cart:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- cart:
	default:
	}
}
