package transform

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

func ToSEO(product dto.AnyProduct, opts Options) model.SEO {
	base := product.Base()
	return model.SEO{
		Title:       firstNonEmpty(base.ProductTitle, base.ProductName),
		Description: firstNonEmpty(base.MetaTagDescription, PlainText(base.Description)),
		Canonical:   ProductGroupURL(opts.BaseURL, base.LinkText),
	}
}

// PageTypeToSEO describes a listing page. Full text search results are not
// indexed.
func PageTypeToSEO(page dto.PageType, canonical string) model.SEO {
	return model.SEO{
		Title:       firstNonEmpty(page.Title, page.Name),
		Description: strings.TrimSpace(page.MetaTagDescription),
		Canonical:   canonical,
		NoIndexing:  page.PageType == dto.PageTypeSearch || page.PageType == dto.PageTypeFullText,
	}
}

// PlainText strips markup from a product description and collapses
// whitespace.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func ToProductDetailsPage(product dto.AnyProduct, sku *dto.Item, opts Options) model.ProductDetailsPage {
	return model.ProductDetailsPage{
		Type:           "ProductDetailsPage",
		BreadcrumbList: ToBreadcrumbList(product, opts),
		Product:        ToProduct(product, sku, 0, opts),
		SEO:            ToSEO(product, opts),
	}
}
