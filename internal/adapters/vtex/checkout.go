package vtex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
)

const orderFormPath = "/api/checkout/pub/orderForm"

var errOrderFormID = errors.New("vtex order form id is required")

// OrderForm fetches an order form. An empty id asks VTEX for a new one.
func (c *Client) OrderForm(ctx context.Context, orderFormID string) (dto.OrderForm, error) {
	path := orderFormPath
	if id := strings.TrimSpace(orderFormID); id != "" {
		path += "/" + url.PathEscape(id)
	}
	resp, err := c.send(ctx, http.MethodGet, path, c.salesChannel(nil), nil, true)
	if err != nil {
		return dto.OrderForm{}, err
	}
	return decodeOrderForm(resp.Body)
}

func (c *Client) AddItems(ctx context.Context, orderFormID string, items []dto.OrderItemInput) (dto.OrderForm, error) {
	body := map[string]any{"orderItems": items}
	return c.mutate(ctx, orderFormID, "/items", body, false)
}

func (c *Client) UpdateItems(ctx context.Context, orderFormID string, items []dto.OrderItemUpdate) (dto.OrderForm, error) {
	body := map[string]any{"orderItems": items}
	return c.mutate(ctx, orderFormID, "/items/update", body, true)
}

func (c *Client) AddCoupon(ctx context.Context, orderFormID, coupon string) (dto.OrderForm, error) {
	body := map[string]any{"text": strings.TrimSpace(coupon)}
	return c.mutate(ctx, orderFormID, "/coupons", body, true)
}

func (c *Client) UpdateItemAttachment(ctx context.Context, orderFormID string, index int, name string, content map[string]string) (dto.OrderForm, error) {
	if strings.TrimSpace(name) == "" {
		return dto.OrderForm{}, errors.New("vtex attachment name is required")
	}
	body := map[string]any{
		"content":     content,
		"noSplitItem": true,
	}
	suffix := "/items/" + strconv.Itoa(index) + "/attachments/" + url.PathEscape(name)
	return c.mutate(ctx, orderFormID, suffix, body, true)
}

func (c *Client) mutate(ctx context.Context, orderFormID, suffix string, body any, idempotent bool) (dto.OrderForm, error) {
	id := strings.TrimSpace(orderFormID)
	if id == "" {
		return dto.OrderForm{}, errOrderFormID
	}
	path := orderFormPath + "/" + url.PathEscape(id) + suffix
	resp, err := c.send(ctx, http.MethodPost, path, c.salesChannel(nil), body, idempotent)
	if err != nil {
		return dto.OrderForm{}, err
	}
	return decodeOrderForm(resp.Body)
}

func decodeOrderForm(raw []byte) (dto.OrderForm, error) {
	var form dto.OrderForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return dto.OrderForm{}, fmt.Errorf("decode order form: %w", err)
	}
	return form, nil
}
