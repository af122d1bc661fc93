// Package custom shows the extension points: a GraphQL _extension
// resolver, a CLI command, a cron job and a root HTTP route, all
// registered from init().
package custom

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eyewear.GO/api"
	"eyewear.GO/cmd"
	"eyewear.GO/core/acl"
	"eyewear.GO/core/catalog"
	"eyewear.GO/core/logger"
	"eyewear.GO/cron"
	"eyewear.GO/graphql"
	gqlregistry "eyewear.GO/graphql/registry"
	catalogService "eyewear.GO/service/catalog"
)

func init() {
	// GraphQL extension: _extension(name: "catalogFacets", args: "{\"kind\":\"frames\",\"selections\":{\"shape\":\"ROUND\"}}")
	gqlregistry.Register("catalogFacets", resolveFacets)

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "catalog:kinds",
		Short: "List catalog kinds and their filter dimensions",
		Run: func(c *cobra.Command, args []string) {
			printKinds(c, catalogService.Descriptors())
		},
	})

	// Cron job
	cron.Register("catalogstats", "@every 15m", logStats)

	// HTTP route
	api.RegisterGET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"acl": acl.DefaultVersion, "kinds": len(catalogService.Descriptors())})
	})
}

func resolveFacets(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	svc := graphql.CatalogFromContext(ctx)
	if svc == nil {
		return nil, errors.New("catalogFacets: catalog service not available")
	}
	kind, _ := args["kind"].(string)
	d, err := svc.Descriptor(kind)
	if err != nil {
		return nil, err
	}
	v, err := catalog.DecodeView(d, args)
	if err != nil {
		return nil, err
	}
	return svc.Facets(ctx, kind, v.Criteria)
}

func printKinds(c *cobra.Command, ds []*catalog.Descriptor) {
	out := c.OutOrStdout()
	for _, d := range ds {
		fmt.Fprintf(out, "%s (%s), page size %d\n", d.Kind, d.Label, d.DefaultPageSize)
		for _, dim := range d.Dimensions {
			fmt.Fprintf(out, "  %-20s %d options\n", dim.Key, len(dim.Options))
		}
	}
}

// logStats logs the active item count of every kind.
func logStats(ctx context.Context, deps *cron.Deps) error {
	for _, d := range deps.Catalog.Kinds() {
		items, err := deps.Catalog.Snapshot(ctx, d.Kind)
		if err != nil {
			return err
		}
		active := 0
		for _, it := range items {
			if it.IsActive {
				active++
			}
		}
		logger.WithContext(ctx).WithFields(logrus.Fields{"kind": d.Kind, "items": len(items), "active": active}).Info("catalog stats")
	}
	return nil
}
