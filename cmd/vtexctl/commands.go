package main

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/app/usecases"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/infra/cache"
	infrahttp "vtex-storefront/internal/infra/http"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

type app struct {
	cfg     *config.Config
	catalog vtex.CatalogService
	opts    transform.Options
	logger  logging.LoggerService
}

type rootFlags struct {
	legacy bool
	quiet  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var a app

	root := &cobra.Command{
		Use:           "vtexctl",
		Short:         "Query a VTEX store through the storefront mappings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if flags.legacy {
				cfg.Storefront.Legacy = true
			}
			if flags.quiet {
				cfg.Log.Level = "error"
			}
			a.cfg = cfg
			a.logger = logging.NewLogger(cfg.Log, config.TelegramBotConfig{})
			a.catalog = vtex.NewClient(cfg.Vtex, infrahttp.NewClient(cfg.Vtex.Timeout), cache.NewMemory(), a.logger)
			a.opts = transform.Options{BaseURL: cfg.Vtex.PublicUrl, PriceCurrency: cfg.Vtex.Currency}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&flags.legacy, "legacy", false, "use catalog search instead of intelligent search")
	root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(newProductCmd(&a), newSearchCmd(&a), newSuggestCmd(&a))
	return root
}

func newProductCmd(a *app) *cobra.Command {
	var skuID string
	cmd := &cobra.Command{
		Use:   "product <slug>",
		Short: "Print the product details page of slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := usecases.NewProductDetails(a.catalog, a.opts, a.logger).Load(cmd.Context(), args[0], skuID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().StringVar(&skuID, "sku", "", "sku to select")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		path    string
		mapping string
		sort    string
		page    int
		filters []string
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Print a product listing page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := usecases.ListingQuery{
				Path: path,
				Map:  mapping,
				Sort: sort,
				Page: page,
				URL:  listingURL(path, filters),
			}
			if len(args) == 1 {
				query.Term = args[0]
			}
			listing := usecases.NewProductListing(a.catalog, a.cfg.Storefront, a.opts, a.logger)
			result, err := listing.Load(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "category or brand path, e.g. roupas/camisas")
	cmd.Flags().StringVar(&mapping, "map", "", "catalog search map for --path")
	cmd.Flags().StringVar(&sort, "sort", "", "sort, e.g. price:asc")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "facet selection key=value, repeatable")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <term>",
		Short: "Print search suggestions for term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestion, err := usecases.NewSuggestions(a.catalog, a.opts, a.logger).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), suggestion)
		},
	}
}

// listingURL turns key=value filters into the filter.key params listings
// read their selection from.
func listingURL(path string, filters []string) *url.URL {
	u := &url.URL{Path: "/s"}
	if p := strings.Trim(path, "/"); p != "" {
		u.Path = "/" + p
	}
	var parts []string
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" || value == "" {
			continue
		}
		parts = append(parts, url.QueryEscape("filter."+key)+"="+url.QueryEscape(value))
	}
	u.RawQuery = strings.Join(parts, "&")
	return u
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
