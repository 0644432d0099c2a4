package model

import "github.com/shopspring/decimal"

type Cart struct {
	ID        string          `json:"id"`
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discounts decimal.Decimal `json:"discounts"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	Coupon    string          `json:"coupon,omitempty"`
	Messages  []CartMessage   `json:"messages,omitempty"`
}

func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

type CartItem struct {
	Index        int                          `json:"index"`
	SKU          string                       `json:"sku"`
	ProductID    string                       `json:"productID"`
	Name         string                       `json:"name"`
	Quantity     int                          `json:"quantity"`
	Seller       string                       `json:"seller"`
	Price        decimal.Decimal              `json:"price"`
	ListPrice    decimal.Decimal              `json:"listPrice"`
	SellingPrice decimal.Decimal              `json:"sellingPrice"`
	Image        string                       `json:"image,omitempty"`
	URL          string                       `json:"url,omitempty"`
	Brand        string                       `json:"brand,omitempty"`
	Available    bool                         `json:"available"`
	Attachments  map[string]map[string]string `json:"attachments,omitempty"`
}

type CartMessage struct {
	Code   string `json:"code"`
	Text   string `json:"text"`
	Status string `json:"status"`
}
