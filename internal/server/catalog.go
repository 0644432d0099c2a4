package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vtex-storefront/internal/app/usecases"
)

func (s *Server) productDetails(c *gin.Context) {
	page, err := s.services.Products.Load(c.Request.Context(), c.Param("slug"), c.Query("skuId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// search serves both full text search (q) and category listings (path).
func (s *Server) search(c *gin.Context) {
	query, err := listingQuery(c.Request.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := s.services.Listing.Load(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) suggestions(c *gin.Context) {
	suggestion, err := s.services.Suggestions.Load(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// listingQuery reads the request and rebuilds the storefront url the
// listing links are relative to: /{path} for categories, /s for search.
func listingQuery(u *url.URL) (usecases.ListingQuery, error) {
	params := u.Query()

	page := 1
	if raw := params.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return usecases.ListingQuery{}, fmt.Errorf("%w: invalid page %q", errBadRequest, raw)
		}
		page = n
	}

	path := strings.Trim(params.Get("path"), "/")
	term := strings.TrimSpace(params.Get("q"))

	storefront := &url.URL{Path: "/s"}
	if path != "" {
		storefront.Path = "/" + path
	}
	// the storefront url keeps the raw query so filter order survives
	var kept []string
	for _, part := range strings.Split(u.RawQuery, "&") {
		key, _, _ := strings.Cut(part, "=")
		if part == "" || key == "path" {
			continue
		}
		kept = append(kept, part)
	}
	storefront.RawQuery = strings.Join(kept, "&")

	return usecases.ListingQuery{
		Term: term,
		Path: path,
		Map:  params.Get("map"),
		Sort: params.Get("sort"),
		Page: page,
		URL:  storefront,
	}, nil
}
