package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/transform"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCheckout struct {
	mu      sync.Mutex
	forms   map[string]*dto.OrderForm
	created int
	calls   []string
	fail    error
}

func newFakeCheckout() *fakeCheckout {
	return &fakeCheckout{forms: make(map[string]*dto.OrderForm)}
}

func (f *fakeCheckout) form(id string) (*dto.OrderForm, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if id == "" {
		f.created++
		id = fmt.Sprintf("of-%d", f.created)
		f.forms[id] = &dto.OrderForm{OrderFormID: id}
	}
	form, ok := f.forms[id]
	if !ok {
		return nil, fmt.Errorf("unknown order form %s", id)
	}
	return form, nil
}

func (f *fakeCheckout) OrderForm(_ context.Context, id string) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get "+id)
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	return *form, nil
}

func (f *fakeCheckout) AddItems(_ context.Context, id string, items []dto.OrderItemInput) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "add "+id)
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	for _, item := range items {
		form.Items = append(form.Items, dto.OrderFormItem{ID: item.ID, Quantity: item.Quantity, Seller: item.Seller, SellingPrice: 1000})
		form.Value += int64(item.Quantity) * 1000
	}
	return *form, nil
}

func (f *fakeCheckout) UpdateItems(_ context.Context, id string, items []dto.OrderItemUpdate) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update "+id)
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	for _, u := range items {
		form.Items[u.Index].Quantity = u.Quantity
	}
	kept := form.Items[:0]
	form.Value = 0
	for _, item := range form.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
			form.Value += int64(item.Quantity) * item.SellingPrice
		}
	}
	form.Items = kept
	return *form, nil
}

func (f *fakeCheckout) AddCoupon(_ context.Context, id, coupon string) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "coupon "+id)
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	form.MarketingData = &dto.MarketingData{Coupon: coupon}
	return *form, nil
}

func (f *fakeCheckout) UpdateItemAttachment(_ context.Context, id string, index int, name string, content map[string]string) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "attachment "+id)
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	form.Items[index].Attachments = []dto.Attachment{{Name: name, Content: content}}
	return *form, nil
}

func (f *fakeCheckout) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestQueue_RunsInOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var mu sync.Mutex
	var order []int
	started := make(chan struct{})
	release := make(chan struct{})

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = q.Enqueue(ctx, func(context.Context) (model.Cart, error) {
			close(started)
			<-release
			mu.Lock()
			order = append(order, 0)
			mu.Unlock()
			return model.Cart{}, nil
		})
	}()
	<-started

	for i := 1; i <= 3; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = q.Enqueue(ctx, func(context.Context) (model.Cart, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return model.Cart{}, nil
			})
		}()
		require.Eventually(t, func() bool {
			q.mu.Lock()
			defer q.mu.Unlock()
			return len(q.pending) == i
		}, time.Second, time.Millisecond)
	}

	close(release)
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestQueue_ReturnsMutationResult(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	boom := errors.New("boom")
	cart, err := q.Enqueue(context.Background(), func(context.Context) (model.Cart, error) {
		return model.Cart{ID: "x"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "x", cart.ID)

	_, err = q.Enqueue(context.Background(), func(context.Context) (model.Cart, error) {
		return model.Cart{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestQueue_ContextCancellation(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = q.Enqueue(context.Background(), func(context.Context) (model.Cart, error) {
			close(started)
			<-release
			return model.Cart{}, nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ran := false
	_, err := q.Enqueue(ctx, func(context.Context) (model.Cart, error) {
		ran = true
		return model.Cart{}, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	_, err = q.Enqueue(context.Background(), func(context.Context) (model.Cart, error) {
		return model.Cart{}, nil
	})
	require.NoError(t, err)
	assert.False(t, ran, "a cancelled mutation that never started is skipped")
}

func TestQueue_Closed(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Close()

	_, err := q.Enqueue(context.Background(), func(context.Context) (model.Cart, error) {
		return model.Cart{}, nil
	})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestState_SubscribeLatestWins(t *testing.T) {
	s := NewState()
	ch, unsubscribe := s.Subscribe()

	s.set(model.Cart{ID: "1"})
	s.set(model.Cart{ID: "2"})
	s.set(model.Cart{ID: "3"})

	got := <-ch
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, "3", s.Snapshot().ID)

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
}

func TestState_LoadingAndErr(t *testing.T) {
	s := NewState()
	s.begin()
	assert.True(t, s.Loading())

	boom := errors.New("boom")
	s.fail(boom)
	assert.False(t, s.Loading())
	assert.ErrorIs(t, s.Err(), boom)

	s.set(model.Cart{ID: "1"})
	assert.NoError(t, s.Err())
}

func TestSession_Flow(t *testing.T) {
	client := newFakeCheckout()
	m := NewManager(client, transform.Options{PriceCurrency: "BRL"}, nil)
	defer m.Close()
	ctx := context.Background()

	s, err := m.Session("")
	require.NoError(t, err)
	updates, unsubscribe := s.State().Subscribe()
	defer unsubscribe()

	cart, err := s.AddItems(ctx, []dto.OrderItemInput{{ID: "1001", Quantity: 2, Seller: "1"}})
	require.NoError(t, err)
	assert.Equal(t, "of-1", cart.ID)
	assert.Equal(t, "of-1", s.ID())
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, "20", cart.Total.String())
	assert.Equal(t, "BRL", cart.Currency)
	assert.Equal(t, "of-1", (<-updates).ID)

	same, err := m.Session("of-1")
	require.NoError(t, err)
	assert.Same(t, s, same, "session registers under its new order form id")

	cart, err = s.AddCoupon(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", cart.Coupon)

	cart, err = s.UpdateItemAttachment(ctx, 0, "Personalização", map[string]string{"nome": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", cart.Items[0].Attachments["Personalização"]["nome"])

	cart, err = s.RemoveAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	assert.Equal(t, []string{
		"get ",
		"add of-1",
		"coupon of-1",
		"attachment of-1",
		"get of-1",
		"update of-1",
	}, client.callLog())
}

func TestSession_LoadCreatesOrderForm(t *testing.T) {
	client := newFakeCheckout()
	m := NewManager(client, transform.Options{}, nil)
	defer m.Close()

	s, err := m.Session(" ")
	require.NoError(t, err)

	cart, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "of-1", cart.ID)
	assert.Equal(t, []string{"get "}, client.callLog())
}

func TestSession_FailureKeepsSnapshot(t *testing.T) {
	client := newFakeCheckout()
	m := NewManager(client, transform.Options{}, nil)
	defer m.Close()
	ctx := context.Background()

	s, err := m.Session("")
	require.NoError(t, err)
	_, err = s.AddItems(ctx, []dto.OrderItemInput{{ID: "1", Quantity: 1, Seller: "1"}})
	require.NoError(t, err)

	boom := errors.New("vtex down")
	client.mu.Lock()
	client.fail = boom
	client.mu.Unlock()

	cart, err := s.AddCoupon(ctx, "X")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "of-1", cart.ID)
	assert.Len(t, cart.Items, 1)
	assert.ErrorIs(t, s.State().Err(), boom)
	assert.False(t, s.State().Loading())
}

func TestSession_ConcurrentMutationsAreSerialized(t *testing.T) {
	client := newFakeCheckout()
	m := NewManager(client, transform.Options{}, nil)
	defer m.Close()
	ctx := context.Background()

	s, err := m.Session("")
	require.NoError(t, err)
	_, err = s.Load(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddItems(ctx, []dto.OrderItemInput{{ID: "1", Quantity: 1, Seller: "1"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, s.State().Snapshot().ItemCount())
	assert.Equal(t, 1, client.created)
}

func TestManager_SweepAndClose(t *testing.T) {
	m := NewManager(newFakeCheckout(), transform.Options{}, nil)

	a, err := m.Session("a")
	require.NoError(t, err)
	_, err = m.Session("b")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	a.lastUsed.Store(time.Now().Add(-time.Hour).UnixNano())
	assert.Equal(t, 1, m.Sweep(time.Minute))
	assert.Equal(t, 1, m.Len())

	fresh, err := m.Session("a")
	require.NoError(t, err)
	assert.NotSame(t, a, fresh)

	m.Close()
	_, err = m.Session("c")
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.Zero(t, m.Len())
}

func TestManager_LookupKeepsSessionAlive(t *testing.T) {
	m := NewManager(newFakeCheckout(), transform.Options{}, nil)
	defer m.Close()

	a, err := m.Session("a")
	require.NoError(t, err)
	a.lastUsed.Store(time.Now().Add(-time.Hour).UnixNano())

	again, err := m.Session("a")
	require.NoError(t, err)
	assert.Same(t, a, again)

	assert.Zero(t, m.Sweep(time.Minute))
	assert.Equal(t, 1, m.Len())
}
