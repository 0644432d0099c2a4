package transform

import (
	"fmt"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
)

// PickSKU returns the item with skuID. Without a skuID it prefers the first
// item any seller has in stock, then the first item.
func PickSKU(product dto.AnyProduct, skuID string) (*dto.Item, error) {
	base := product.Base()
	if len(base.Items) == 0 {
		return nil, fmt.Errorf("%w: product %s", ErrNoItems, base.ProductID)
	}

	skuID = strings.TrimSpace(skuID)
	if skuID != "" {
		for i := range base.Items {
			if base.Items[i].ItemID == skuID {
				return &base.Items[i], nil
			}
		}
		return nil, fmt.Errorf("%w: sku %s on product %s", ErrSkuNotFound, skuID, base.ProductName)
	}

	for i := range base.Items {
		if itemInStock(base.Items[i]) {
			return &base.Items[i], nil
		}
	}
	return &base.Items[0], nil
}

func itemInStock(item dto.Item) bool {
	for _, seller := range item.Sellers {
		if seller.CommertialOffer.AvailableQuantity > 0 {
			return true
		}
	}
	return false
}
