package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/app/usecases"
	"vtex-storefront/internal/cart"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/transform"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProducts struct {
	slug, sku string
	err       error
}

func (f *fakeProducts) Load(_ context.Context, slug, skuID string) (model.ProductDetailsPage, error) {
	f.slug, f.sku = slug, skuID
	if f.err != nil {
		return model.ProductDetailsPage{}, f.err
	}
	return model.ProductDetailsPage{Type: "ProductDetailsPage", Product: model.Product{SKU: skuID}}, nil
}

type fakeListing struct {
	query usecases.ListingQuery
}

func (f *fakeListing) Load(_ context.Context, query usecases.ListingQuery) (model.ProductListingPage, error) {
	f.query = query
	return model.ProductListingPage{Type: "ProductListingPage"}, nil
}

type fakeSuggestions struct{}

func (fakeSuggestions) Load(_ context.Context, term string) (model.Suggestion, error) {
	return model.Suggestion{Searches: []model.Search{{Term: term, Href: "/s?q=" + term}}}, nil
}

type fakeCheckout struct {
	mu      sync.Mutex
	forms   map[string]*dto.OrderForm
	created int
	coupons []string
}

func (f *fakeCheckout) form(id string) (*dto.OrderForm, error) {
	if id == "" {
		f.created++
		id = fmt.Sprintf("of-%d", f.created)
		f.forms[id] = &dto.OrderForm{OrderFormID: id}
	}
	form, ok := f.forms[id]
	if !ok {
		return nil, &vtex.HTTPStatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	return form, nil
}

func (f *fakeCheckout) OrderForm(_ context.Context, id string) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	return *form, nil
}

func (f *fakeCheckout) AddItems(_ context.Context, id string, items []dto.OrderItemInput) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	for _, item := range items {
		form.Items = append(form.Items, dto.OrderFormItem{ID: item.ID, Quantity: item.Quantity, Seller: item.Seller})
	}
	return *form, nil
}

func (f *fakeCheckout) UpdateItems(_ context.Context, id string, items []dto.OrderItemUpdate) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	for _, u := range items {
		if u.Index < len(form.Items) {
			form.Items[u.Index].Quantity = u.Quantity
		}
	}
	kept := form.Items[:0]
	for _, item := range form.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	form.Items = kept
	return *form, nil
}

func (f *fakeCheckout) AddCoupon(_ context.Context, id, coupon string) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	f.coupons = append(f.coupons, coupon)
	form.MarketingData = &dto.MarketingData{Coupon: coupon}
	return *form, nil
}

func (f *fakeCheckout) UpdateItemAttachment(_ context.Context, id string, index int, name string, content map[string]string) (dto.OrderForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	form, err := f.form(id)
	if err != nil {
		return dto.OrderForm{}, err
	}
	if index >= len(form.Items) {
		return dto.OrderForm{}, &vtex.HTTPStatusError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request"}
	}
	form.Items[index].Attachments = append(form.Items[index].Attachments, dto.Attachment{Name: name, Content: content})
	return *form, nil
}

type fixture struct {
	server   *Server
	products *fakeProducts
	listing  *fakeListing
	checkout *fakeCheckout
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		products: &fakeProducts{},
		listing:  &fakeListing{},
		checkout: &fakeCheckout{forms: map[string]*dto.OrderForm{}},
	}
	manager := cart.NewManager(f.checkout, transform.Options{PriceCurrency: "BRL"}, nil)
	t.Cleanup(manager.Close)

	f.server = New(config.ServerConfig{AllowedOrigins: []string{"https://www.acme.com"}}, Services{
		Products:    f.products,
		Listing:     f.listing,
		Suggestions: fakeSuggestions{},
		Carts:       manager,
	}, nil)
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func orderFormCookieOf(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == orderFormCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie", orderFormCookie)
	return nil
}

func TestHealthz(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://www.acme.com")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "https://www.acme.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestProductDetails(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/products/camisa-azul?skuId=42", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "camisa-azul", f.products.slug)
	assert.Equal(t, "42", f.products.sku)
	var page model.ProductDetailsPage
	decodeBody(t, rec, &page)
	assert.Equal(t, "42", page.Product.SKU)
}

func TestProductDetails_Errors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("wrap: %w", vtex.ErrNotFound), http.StatusNotFound},
		{transform.ErrSkuNotFound, http.StatusNotFound},
		{&vtex.HTTPStatusError{StatusCode: http.StatusServiceUnavailable, Status: "503"}, http.StatusBadGateway},
		{&vtex.HTTPStatusError{StatusCode: http.StatusForbidden, Status: "403"}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			f := newFixture(t)
			f.products.err = tt.err
			rec := f.do(t, http.MethodGet, "/api/products/x", "")
			assert.Equal(t, tt.code, rec.Code)
			var body errorResponse
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.err.Error(), body.Error)
		})
	}
}

func TestSearch_Query(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/search?q=tenis&filter.brand=acme&sort=price:asc&page=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	q := f.listing.query
	assert.Equal(t, "tenis", q.Term)
	assert.Equal(t, "price:asc", q.Sort)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, "/s", q.URL.Path)
	assert.Equal(t, "q=tenis&filter.brand=acme&sort=price:asc&page=2", q.URL.RawQuery)
}

func TestSearch_CategoryPath(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/search?path=/roupas/camisas/&map=c,c", "")

	require.Equal(t, http.StatusOK, rec.Code)
	q := f.listing.query
	assert.Equal(t, "roupas/camisas", q.Path)
	assert.Equal(t, "c,c", q.Map)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "/roupas/camisas", q.URL.Path)
	assert.Equal(t, "map=c,c", q.URL.RawQuery)
}

func TestSearch_InvalidPage(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/search?q=x&page=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestions(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/suggestions?q=ten", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Suggestion
	decodeBody(t, rec, &got)
	require.Len(t, got.Searches, 1)
	assert.Equal(t, "ten", got.Searches[0].Term)
}

func TestCart_Flow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := orderFormCookieOf(t, rec)
	var got model.Cart
	decodeBody(t, rec, &got)
	assert.Equal(t, "of-1", got.ID)

	rec = f.do(t, http.MethodPost, "/api/cart/items", `{"orderItems":[{"id":"10","quantity":2,"seller":"1"},{"id":"11","quantity":1,"seller":"1"}]}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.Equal(t, "of-1", got.ID)
	require.Len(t, got.Items, 2)

	rec = f.do(t, http.MethodPost, "/api/cart/items/update", `{"orderItems":[{"index":0,"quantity":5}]}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.Equal(t, 5, got.Items[0].Quantity)

	rec = f.do(t, http.MethodPost, "/api/cart/coupons", `{"text":"PROMO10"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.Equal(t, "PROMO10", got.Coupon)

	rec = f.do(t, http.MethodPost, "/api/cart/items/1/attachments/gift", `{"content":{"message":"parabens"}}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/cart/items", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.Empty(t, got.Items)

	assert.Equal(t, 1, f.checkout.created)
}

func TestCart_MutationWithoutCookieCreatesForm(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/cart/coupons", `{"text":"PROMO10"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := orderFormCookieOf(t, rec)
	assert.True(t, strings.Contains(cookie.Value, "of-1"))
	assert.Equal(t, []string{"PROMO10"}, f.checkout.coupons)
}

func TestCart_ReadsVtexCookie(t *testing.T) {
	f := newFixture(t)
	f.checkout.forms["abc"] = &dto.OrderForm{OrderFormID: "abc"}

	rec := f.do(t, http.MethodGet, "/api/cart", "", &http.Cookie{Name: orderFormCookie, Value: "__ofid=abc"})
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Cart
	decodeBody(t, rec, &got)
	assert.Equal(t, "abc", got.ID)
	assert.Zero(t, f.checkout.created)
}

func TestCart_BadRequests(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name, method, target, body string
	}{
		{"empty items", http.MethodPost, "/api/cart/items", `{"orderItems":[]}`},
		{"missing quantity", http.MethodPost, "/api/cart/items", `{"orderItems":[{"id":"1","seller":"1"}]}`},
		{"negative update", http.MethodPost, "/api/cart/items/update", `{"orderItems":[{"index":-1,"quantity":1}]}`},
		{"missing coupon", http.MethodPost, "/api/cart/coupons", `{}`},
		{"bad index", http.MethodPost, "/api/cart/items/x/attachments/gift", `{"content":{}}`},
		{"bad json", http.MethodPost, "/api/cart/coupons", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, f.checkout.created)
}

func TestCart_UnknownOrderForm(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/cart", "", &http.Cookie{Name: orderFormCookie, Value: "__ofid=gone"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListingQuery_DropsEmptyParts(t *testing.T) {
	q, err := listingQuery(mustParse(t, "/api/search?q=a&&path=x"))
	require.NoError(t, err)
	assert.Equal(t, "/x", q.URL.Path)
	assert.Equal(t, "q=a", q.URL.RawQuery)
}
