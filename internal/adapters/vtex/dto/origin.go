package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

const OriginIntelligentSearch = "intelligent-search"

var ErrInvalidPayload = errors.New("invalid vtex payload")

// IsIntelligentSearch reports whether a raw product payload came from
// intelligent search. Catalog search products have no origin field.
func IsIntelligentSearch(raw []byte) bool {
	return gjson.GetBytes(raw, "origin").String() == OriginIntelligentSearch
}

// DecodeProduct decodes a single product into the shape named by its origin.
func DecodeProduct(raw []byte) (AnyProduct, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("%w: product is not a json object", ErrInvalidPayload)
	}
	if IsIntelligentSearch(raw) {
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode intelligent search product: %w", err)
		}
		return &p, nil
	}
	var p LegacyProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode catalog product: %w", err)
	}
	return &p, nil
}

// DecodeProducts decodes a json array of products, each by its own origin.
func DecodeProducts(raw []byte) ([]AnyProduct, error) {
	parsed := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !parsed.IsArray() {
		return nil, fmt.Errorf("%w: products is not a json array", ErrInvalidPayload)
	}
	elements := parsed.Array()
	out := make([]AnyProduct, 0, len(elements))
	for _, el := range elements {
		p, err := DecodeProduct([]byte(el.Raw))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
