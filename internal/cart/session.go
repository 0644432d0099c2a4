package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

// Session is the cart of one order form.
type Session struct {
	client vtex.CheckoutService
	opts   transform.Options
	logger logging.LoggerService

	state *State
	queue *Queue

	mu       sync.RWMutex
	id       string
	onID     func(id string, s *Session)
	lastUsed atomic.Int64
}

func newSession(id string, client vtex.CheckoutService, opts transform.Options, logger logging.LoggerService) *Session {
	s := &Session{
		client: client,
		opts:   opts,
		logger: logger,
		state:  NewState(),
		queue:  NewQueue(),
		id:     id,
	}
	s.touch()
	return s
}

func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Session) State() *State {
	return s.state
}

// Load fetches the order form, creating one when the session has no id yet.
func (s *Session) Load(ctx context.Context) (model.Cart, error) {
	return s.run(ctx, "load", func(ctx context.Context, id string) (dto.OrderForm, error) {
		return s.client.OrderForm(ctx, id)
	})
}

func (s *Session) AddItems(ctx context.Context, items []dto.OrderItemInput) (model.Cart, error) {
	return s.run(ctx, "add items", func(ctx context.Context, id string) (dto.OrderForm, error) {
		return s.client.AddItems(ctx, id, items)
	})
}

func (s *Session) UpdateItems(ctx context.Context, items []dto.OrderItemUpdate) (model.Cart, error) {
	return s.run(ctx, "update items", func(ctx context.Context, id string) (dto.OrderForm, error) {
		return s.client.UpdateItems(ctx, id, items)
	})
}

func (s *Session) AddCoupon(ctx context.Context, coupon string) (model.Cart, error) {
	return s.run(ctx, "add coupon", func(ctx context.Context, id string) (dto.OrderForm, error) {
		return s.client.AddCoupon(ctx, id, coupon)
	})
}

func (s *Session) UpdateItemAttachment(ctx context.Context, index int, name string, content map[string]string) (model.Cart, error) {
	return s.run(ctx, "update attachment", func(ctx context.Context, id string) (dto.OrderForm, error) {
		return s.client.UpdateItemAttachment(ctx, id, index, name, content)
	})
}

// RemoveAllItems sets every item of the current order form to zero.
func (s *Session) RemoveAllItems(ctx context.Context) (model.Cart, error) {
	return s.run(ctx, "remove all items", func(ctx context.Context, id string) (dto.OrderForm, error) {
		form, err := s.client.OrderForm(ctx, id)
		if err != nil || len(form.Items) == 0 {
			return form, err
		}
		updates := make([]dto.OrderItemUpdate, 0, len(form.Items))
		for i := range form.Items {
			updates = append(updates, dto.OrderItemUpdate{Index: i, Quantity: 0})
		}
		return s.client.UpdateItems(ctx, form.OrderFormID, updates)
	})
}

// run queues call. Mutations on a session without an order form first ask
// VTEX for a new one.
func (s *Session) run(ctx context.Context, op string, call func(ctx context.Context, id string) (dto.OrderForm, error)) (model.Cart, error) {
	s.touch()
	return s.queue.Enqueue(ctx, func(ctx context.Context) (model.Cart, error) {
		s.state.begin()

		id := s.ID()
		if id == "" && op != "load" {
			form, err := s.client.OrderForm(ctx, "")
			if err != nil {
				return s.failed(op, err)
			}
			s.setID(form.OrderFormID)
			id = form.OrderFormID
		}

		form, err := call(ctx, id)
		if err != nil {
			return s.failed(op, err)
		}

		cart := transform.ToCart(form, s.opts)
		s.setID(cart.ID)
		s.state.set(cart)
		return cart, nil
	})
}

func (s *Session) failed(op string, err error) (model.Cart, error) {
	s.state.fail(err)
	if s.logger != nil {
		s.logger.LogError("cart "+op+" failed", err)
	}
	return s.state.Snapshot(), err
}

func (s *Session) setID(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	changed := s.id != id
	s.id = id
	onID := s.onID
	s.mu.Unlock()
	if changed && onID != nil {
		onID(id, s)
	}
}

func (s *Session) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

func (s *Session) close() {
	s.queue.Close()
	s.state.closeAll()
}
