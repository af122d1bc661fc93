package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eyewear.GO/core/catalog"
	productRepo "eyewear.GO/model/repository/catalog"
	catalogService "eyewear.GO/service/catalog"
)

var catalogSeedCmd = &cobra.Command{
	Use:   "catalog:seed",
	Short: "Write the embedded seed catalogs into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		written, err := catalogService.SeedDB(cmd.Context(), productRepo.GetProductRepository(db), catalogService.SeedSource{})
		if err != nil {
			return err
		}
		for _, d := range catalogService.Descriptors() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d rows\n", d.Kind, written[d.Kind])
		}
		return nil
	},
}

var importKind string

var catalogImportCmd = &cobra.Command{
	Use:   "catalog:import [file.csv]",
	Short: "Import products of one kind from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()

		res, err := catalogService.ImportCSV(cmd.Context(), productRepo.GetProductRepository(db), importKind, f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rows: %d, created: %d, updated: %d, skipped: %d in %s\n",
			res.TotalRows, res.Created, res.Updated, res.Skipped, res.TotalTime)
		for _, w := range res.Warnings {
			fmt.Fprintln(out, "warning:", w)
		}
		return nil
	},
}

var queryFlags struct {
	selections []string
	minPrice   int64
	maxPrice   int64
	search     string
	page       int
	pageSize   int
	asJSON     bool
}

var catalogQueryCmd = &cobra.Command{
	Use:   "catalog:query [kind]",
	Short: "Filter and paginate a catalog from the command line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd.Context())
		if err != nil {
			return err
		}
		return runQuery(cmd, deps.Catalog, args[0])
	},
}

func runQuery(cmd *cobra.Command, svc *catalogService.Service, kind string) error {
	d, err := svc.Descriptor(kind)
	if err != nil {
		return err
	}
	v, err := viewFromFlags(cmd, d)
	if err != nil {
		return err
	}
	res, next, err := svc.Browse(cmd.Context(), v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if queryFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			View   catalog.View       `json:"view"`
			Result catalog.PageResult `json:"result"`
		}{next, res})
	}
	fmt.Fprintf(out, "%s: %d items, page %d/%d\n", d.Label, res.TotalItems, next.Page.PageNumber, res.TotalPages)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tBADGE")
	for _, it := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.ID, it.Name, it.Price, it.Badge)
	}
	return tw.Flush()
}

// viewFromFlags applies flags on top of the descriptor defaults. The page
// is set last because filter and size changes reset it.
func viewFromFlags(cmd *cobra.Command, d *catalog.Descriptor) (catalog.View, error) {
	v := catalog.NewView(d)
	for _, s := range queryFlags.selections {
		key, values, ok := strings.Cut(s, "=")
		if !ok {
			return v, fmt.Errorf("--select %q: want dimension=VALUE[,VALUE]", s)
		}
		if _, ok := d.Dimension(key); !ok {
			return v, fmt.Errorf("--select %q: %s has no dimension %q", s, d.Kind, key)
		}
		for _, val := range strings.Split(values, ",") {
			if val = strings.TrimSpace(val); val != "" && !v.Criteria.Selected(key).Has(val) {
				v = v.Toggle(key, val)
			}
		}
	}
	flags := cmd.Flags()
	if flags.Changed("min-price") || flags.Changed("max-price") {
		r := *v.Criteria.Price
		if flags.Changed("min-price") {
			r.Min = queryFlags.minPrice
		}
		if flags.Changed("max-price") {
			r.Max = queryFlags.maxPrice
		}
		v = v.SetPriceRange(r)
	}
	if queryFlags.search != "" {
		v = v.SetSearch(queryFlags.search)
	}
	if flags.Changed("page-size") {
		v = v.SetPageSize(queryFlags.pageSize)
	}
	if flags.Changed("page") {
		v = v.SetPage(queryFlags.page)
	}
	return v, nil
}

var catalogReindexCmd = &cobra.Command{
	Use:   "catalog:reindex [kind...]",
	Short: "Push catalog snapshots to Elasticsearch",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps(cmd.Context())
		if err != nil {
			return err
		}
		if !deps.Indexer.Enabled() {
			return fmt.Errorf("ELASTICSEARCH_HOST is not set")
		}
		kinds := args
		if len(kinds) == 0 {
			for _, d := range deps.Catalog.Kinds() {
				kinds = append(kinds, d.Kind)
			}
		}
		return reindex(cmd, deps.Catalog, kinds, deps.Indexer.Reindex)
	},
}

type reindexFunc func(ctx context.Context, kind string, items []catalog.Item) (int, error)

func reindex(cmd *cobra.Command, svc *catalogService.Service, kinds []string, index reindexFunc) error {
	ctx := cmd.Context()
	for _, kind := range kinds {
		items, err := svc.Snapshot(ctx, kind)
		if err != nil {
			return err
		}
		n, err := index(ctx, kind, items)
		if err != nil {
			return fmt.Errorf("reindex %s: %w", kind, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d documents\n", kind, n)
	}
	return nil
}

func init() {
	catalogImportCmd.Flags().StringVarP(&importKind, "kind", "k", "", "Catalog kind (frames, lenses, accessories)")
	_ = catalogImportCmd.MarkFlagRequired("kind")

	f := catalogQueryCmd.Flags()
	f.StringArrayVarP(&queryFlags.selections, "select", "s", nil, "Dimension selection, e.g. shape=ROUND,OVAL (repeatable)")
	f.Int64Var(&queryFlags.minPrice, "min-price", 0, "Minimum display price")
	f.Int64Var(&queryFlags.maxPrice, "max-price", 0, "Maximum display price")
	f.StringVarP(&queryFlags.search, "search", "q", "", "Case-insensitive search text")
	f.IntVarP(&queryFlags.page, "page", "p", 1, "Page number (1-based)")
	f.IntVar(&queryFlags.pageSize, "page-size", 0, "Items per page (descriptor default when unset)")
	f.BoolVar(&queryFlags.asJSON, "json", false, "Print the view and page as JSON")

	rootCmd.AddCommand(catalogSeedCmd, catalogImportCmd, catalogQueryCmd, catalogReindexCmd)
}
