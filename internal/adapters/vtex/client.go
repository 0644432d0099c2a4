package vtex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/infra/cache"
	"vtex-storefront/internal/logging"
)

type CatalogService interface {
	ProductBySlug(ctx context.Context, slug string) (dto.AnyProduct, error)
	LegacySearch(ctx context.Context, params LegacySearchParams) (LegacySearchResult, error)
	LegacyFacets(ctx context.Context, path, mapParam string) (dto.LegacyFacets, error)
	PageType(ctx context.Context, path string) (dto.PageType, error)
	ProductSearch(ctx context.Context, params SearchParams) (dto.ProductSearchResult, error)
	Facets(ctx context.Context, params SearchParams) (dto.FacetsResult, error)
	Suggestions(ctx context.Context, term string) (dto.SuggestionsResult, error)
}

type CheckoutService interface {
	OrderForm(ctx context.Context, orderFormID string) (dto.OrderForm, error)
	AddItems(ctx context.Context, orderFormID string, items []dto.OrderItemInput) (dto.OrderForm, error)
	UpdateItems(ctx context.Context, orderFormID string, items []dto.OrderItemUpdate) (dto.OrderForm, error)
	AddCoupon(ctx context.Context, orderFormID, coupon string) (dto.OrderForm, error)
	UpdateItemAttachment(ctx context.Context, orderFormID string, index int, name string, content map[string]string) (dto.OrderForm, error)
}

type NewClientService interface {
	CatalogService
	CheckoutService
}

type Client struct {
	config     config.VtexConfig
	httpClient *http.Client
	cache      cache.Cache
	logger     logging.LoggerService
	retryBase  time.Duration
}

// NewClient builds the VTEX client. cache may be nil, in which case
// nothing is cached.
func NewClient(config config.VtexConfig, httpClient *http.Client, cache cache.Cache, logger logging.LoggerService) NewClientService {
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
		retryBase:  requestRetryBaseDelay,
	}
}

// response is what a request keeps of an http response, and what the cache
// stores.
type response struct {
	Body      []byte `json:"body"`
	Resources string `json:"resources,omitempty"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	endpoint := strings.TrimRight(c.config.BaseUrl, "/") + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return endpoint
}

// get runs a GET, served from the cache when cached is set.
func (c *Client) get(ctx context.Context, path string, query url.Values, cached bool) (*response, error) {
	endpoint := c.endpoint(path, query)
	cached = cached && c.cache != nil

	if cached {
		raw, ok, err := c.cache.Get(ctx, endpoint)
		if err != nil {
			c.logWarning(fmt.Sprintf("vtex cache read failed: %v", err))
		}
		if ok {
			var resp response
			if err := json.Unmarshal(raw, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := c.doWithRetry(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return nil, err
	}

	if cached {
		if raw, err := json.Marshal(resp); err == nil {
			if err := c.cache.Set(ctx, endpoint, raw, c.config.CacheTTL); err != nil {
				c.logWarning(fmt.Sprintf("vtex cache write failed: %v", err))
			}
		}
	}
	return resp, nil
}

// send runs a request with a json body. Requests that are not idempotent
// are never retried.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, idempotent bool) (*response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}
	return c.doWithRetry(ctx, method, c.endpoint(path, query), payload, idempotent)
}

func (c *Client) doWithRetry(ctx context.Context, method, endpoint string, body []byte, retry bool) (*response, error) {
	attempts := 1
	if retry {
		attempts = requestRetryMax
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := c.do(ctx, method, endpoint, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isRetryableHTTPError(err) || attempt == attempts-1 {
			break
		}
		c.logWarning(fmt.Sprintf("vtex %s %s retry %d: %v", method, endpoint, attempt+1, err))
		if err := sleepWithContext(ctx, retryDelay(c.retryBase, attempt)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.AppKey != "" && c.config.AppToken != "" {
		req.Header.Set("X-VTEX-API-AppKey", c.config.AppKey)
		req.Header.Set("X-VTEX-API-AppToken", c.config.AppToken)
	}

	client := c.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPStatusError(resp.StatusCode, resp.Status, respBody)
	}

	return &response{
		Body:      respBody,
		Resources: resp.Header.Get("resources"),
	}, nil
}

func (c *Client) salesChannel(query url.Values) url.Values {
	if query == nil {
		query = url.Values{}
	}
	if c.config.SalesChannel > 0 {
		query.Set("sc", strconv.Itoa(c.config.SalesChannel))
	}
	return query
}

func (c *Client) logWarning(value string) {
	if c.logger != nil {
		c.logger.LogWarning(value)
	}
}

// escapePath escapes each segment of a slash separated path.
func escapePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, url.PathEscape(p))
		}
	}
	return strings.Join(out, "/")
}
