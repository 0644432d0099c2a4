package transform

import (
	"strings"

	"github.com/shopspring/decimal"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

const itemAvailable = "available"

func cents(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// ToCart maps an order form. Totalizer values are cents; VTEX reports
// discounts as a negative number.
func ToCart(form dto.OrderForm, opts Options) model.Cart {
	cart := model.Cart{
		ID:        form.OrderFormID,
		Items:     make([]model.CartItem, 0, len(form.Items)),
		Subtotal:  decimal.Zero,
		Discounts: decimal.Zero,
		Shipping:  decimal.Zero,
		Total:     cents(form.Value),
		Currency:  firstNonEmpty(form.StorePreferencesData.CurrencyCode, opts.PriceCurrency),
	}

	for i, item := range form.Items {
		cart.Items = append(cart.Items, toCartItem(i, item, opts))
	}

	for _, t := range form.Totalizers {
		switch t.ID {
		case "Items":
			cart.Subtotal = cents(t.Value)
		case "Discounts":
			cart.Discounts = cents(t.Value)
		case "Shipping":
			cart.Shipping = cents(t.Value)
		}
	}

	if form.MarketingData != nil {
		cart.Coupon = strings.TrimSpace(form.MarketingData.Coupon)
	}
	for _, m := range form.Messages {
		cart.Messages = append(cart.Messages, model.CartMessage{
			Code:   m.Code,
			Text:   m.Text,
			Status: m.Status,
		})
	}
	return cart
}

func toCartItem(index int, item dto.OrderFormItem, opts Options) model.CartItem {
	out := model.CartItem{
		Index:        index,
		SKU:          item.ID,
		ProductID:    item.ProductID,
		Name:         firstNonEmpty(item.Name, item.SkuName),
		Quantity:     item.Quantity,
		Seller:       item.Seller,
		Price:        cents(item.Price),
		ListPrice:    cents(item.ListPrice),
		SellingPrice: cents(item.SellingPrice),
		Image:        item.ImageURL,
		URL:          cartItemURL(item.DetailURL, opts),
		Brand:        item.AdditionalInfo.BrandName,
		Available:    item.Availability == itemAvailable,
	}
	if len(item.Attachments) > 0 {
		out.Attachments = make(map[string]map[string]string, len(item.Attachments))
		for _, a := range item.Attachments {
			out.Attachments[a.Name] = a.Content
		}
	}
	return out
}

func cartItemURL(detailURL string, opts Options) string {
	detailURL = strings.TrimSpace(detailURL)
	if detailURL == "" || strings.Contains(detailURL, "://") {
		return detailURL
	}
	path, query, _ := strings.Cut(detailURL, "?")
	u := absoluteURL(opts.BaseURL, "/"+strings.TrimLeft(path, "/"))
	u.RawQuery = query
	return u.String()
}
