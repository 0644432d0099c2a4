package transform

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vtex-storefront/internal/adapters/vtex/dto"
)

var testOpts = Options{BaseURL: "https://www.acme.com", PriceCurrency: "BRL"}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func legacyProduct(t *testing.T) *dto.LegacyProduct {
	t.Helper()
	p, err := dto.DecodeProduct(readFixture(t, "legacy_product.json"))
	require.NoError(t, err)
	legacy, ok := p.(*dto.LegacyProduct)
	require.True(t, ok, "expected a catalog search product")
	return legacy
}

func searchProduct(t *testing.T) *dto.Product {
	t.Helper()
	p, err := dto.DecodeProduct(readFixture(t, "is_product.json"))
	require.NoError(t, err)
	is, ok := p.(*dto.Product)
	require.True(t, ok, "expected an intelligent search product")
	return is
}

func decodeFixture(t *testing.T, name string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(readFixture(t, name), v))
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
