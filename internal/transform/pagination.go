package transform

import (
	"net/url"
	"strconv"

	"vtex-storefront/internal/domain/model"
)

// ToPageInfo builds 1-based pagination. Next and previous links are the
// current query with page replaced.
func ToPageInfo(page, perPage, records int, current *url.URL) model.PageInfo {
	if page < 1 {
		page = 1
	}
	info := model.PageInfo{
		CurrentPage:   page,
		RecordPerPage: perPage,
		Records:       records,
	}
	if perPage > 0 && page*perPage < records {
		info.NextPage = withPage(current, page+1)
	}
	if page > 1 {
		info.PreviousPage = withPage(current, page-1)
	}
	return info
}

func withPage(current *url.URL, page int) string {
	query := url.Values{}
	if current != nil {
		query = current.Query()
	}
	query.Set("page", strconv.Itoa(page))
	return "?" + query.Encode()
}
