package transform

import (
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

// ToBreadcrumbList walks the category trail root first, each level linking
// to its slugified path, and ends with the product itself.
func ToBreadcrumbList(product dto.AnyProduct, opts Options) model.BreadcrumbList {
	base := product.Base()
	names := categoryTrail(base.Categories)

	items := make([]model.ListItem, 0, len(names)+1)
	items = append(items, categoryItems(names, opts)...)
	items = append(items, model.ListItem{
		Type:     "ListItem",
		Name:     base.ProductName,
		Item:     ProductGroupURL(opts.BaseURL, base.LinkText),
		Position: len(names) + 1,
	})

	return model.BreadcrumbList{
		Type:            "BreadcrumbList",
		ItemListElement: items,
		NumberOfItems:   len(items),
	}
}

func categoryItems(names []string, opts Options) []model.ListItem {
	items := make([]model.ListItem, 0, len(names))
	slugs := make([]string, 0, len(names))
	for i, name := range names {
		slugs = append(slugs, Slugify(name))
		items = append(items, model.ListItem{
			Type:     "ListItem",
			Name:     name,
			Item:     absoluteURL(opts.BaseURL, "/"+strings.Join(slugs, "/")).String(),
			Position: i + 1,
		})
	}
	return items
}

var breadcrumbPageTypes = map[string]bool{
	dto.PageTypeDepartment:  true,
	dto.PageTypeCategory:    true,
	dto.PageTypeSubCategory: true,
	dto.PageTypeBrand:       true,
	dto.PageTypeCollection:  true,
}

// PageTypesToBreadcrumbList expects pages root first, as resolved for each
// prefix of the listing path. Search and not-found pages are skipped.
func PageTypesToBreadcrumbList(pages []dto.PageType, opts Options) model.BreadcrumbList {
	names := make([]string, 0, len(pages))
	for _, page := range pages {
		if !breadcrumbPageTypes[page.PageType] {
			continue
		}
		names = append(names, firstNonEmpty(page.Name, page.Title))
	}
	items := categoryItems(names, opts)
	return model.BreadcrumbList{
		Type:            "BreadcrumbList",
		ItemListElement: items,
		NumberOfItems:   len(items),
	}
}

// FacetBreadcrumbToList maps the breadcrumb intelligent search returns
// alongside facets.
func FacetBreadcrumbToList(crumbs []dto.FacetBreadcrumb, opts Options) model.BreadcrumbList {
	items := make([]model.ListItem, 0, len(crumbs))
	for i, crumb := range crumbs {
		items = append(items, model.ListItem{
			Type:     "ListItem",
			Name:     crumb.Name,
			Item:     absoluteURL(opts.BaseURL, "/"+strings.TrimLeft(crumb.Href, "/")).String(),
			Position: i + 1,
		})
	}
	return model.BreadcrumbList{
		Type:            "BreadcrumbList",
		ItemListElement: items,
		NumberOfItems:   len(items),
	}
}
