package usecases

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

const suggestionProducts = 5

type SuggestionsService interface {
	Load(ctx context.Context, term string) (model.Suggestion, error)
}

type Suggestions struct {
	catalog vtex.CatalogService
	opts    transform.Options
	logger  logging.LoggerService
}

func NewSuggestions(catalog vtex.CatalogService, opts transform.Options, logger logging.LoggerService) SuggestionsService {
	return &Suggestions{
		catalog: catalog,
		opts:    opts,
		logger:  logger,
	}
}

func (c *Suggestions) Load(ctx context.Context, term string) (model.Suggestion, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return model.Suggestion{Searches: []model.Search{}}, nil
	}

	var (
		suggestions dto.SuggestionsResult
		products    dto.ProductSearchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		suggestions, err = c.catalog.Suggestions(gctx, term)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = c.catalog.ProductSearch(gctx, vtex.SearchParams{Query: term, Count: suggestionProducts})
		return err
	})
	if err := g.Wait(); err != nil {
		if c.logger != nil {
			c.logger.LogError(fmt.Sprintf("Error load suggestions %q", term), err)
		}
		return model.Suggestion{}, err
	}

	return model.Suggestion{
		Searches: RankSearches(term, suggestions.Searches),
		Products: transform.ToListingProducts(transform.SearchProducts(products.Products), c.opts),
	}, nil
}

// RankSearches puts the terms fuzzy matching term first, closest first.
// The rest keep the vendor order.
func RankSearches(term string, searches []dto.SearchTerm) []model.Search {
	targets := make([]string, 0, len(searches))
	for _, s := range searches {
		targets = append(targets, s.Term)
	}

	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)

	out := make([]model.Search, 0, len(searches))
	matched := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		matched[r.OriginalIndex] = true
		out = append(out, toSearch(searches[r.OriginalIndex]))
	}
	for i, s := range searches {
		if !matched[i] {
			out = append(out, toSearch(s))
		}
	}
	return out
}

func toSearch(s dto.SearchTerm) model.Search {
	return model.Search{
		Term: s.Term,
		Href: "/s?q=" + url.QueryEscape(s.Term),
		Hits: s.Count,
	}
}
