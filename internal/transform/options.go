// Package transform maps VTEX catalog, search and checkout payloads onto the
// canonical schema.org model. Every function here is pure.
package transform

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrSkuNotFound = errors.New("sku not found")
	ErrNoItems     = errors.New("product has no items")
)

// Options carry the storefront context a mapping needs.
type Options struct {
	// BaseURL is the public storefront origin product and category URLs
	// are resolved against. An empty BaseURL yields relative URLs.
	BaseURL       string
	PriceCurrency string
}

func absoluteURL(baseURL, path string) *url.URL {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Host == "" {
		return &url.URL{Path: path}
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = ""
	u.Fragment = ""
	return u
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
