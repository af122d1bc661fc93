package html

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"eyewear.GO/api"
	"eyewear.GO/config"
	"eyewear.GO/core/catalog"
	"eyewear.GO/core/logger"
	"eyewear.GO/html/parts"
	catalogService "eyewear.GO/service/catalog"
)

func init() {
	api.RegisterRoute(RegisterCatalogHTMLRoutes)
}

type filterOption struct {
	Label    string
	Count    int
	Selected bool
	URL      string
}

type filterGroup struct {
	Label   string
	Options []filterOption
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// RegisterCatalogHTMLRoutes mounts the server-rendered storefront pages.
func RegisterCatalogHTMLRoutes(e *echo.Echo, deps *api.Deps) {
	if e.Renderer == nil {
		e.Renderer = NewTemplate()
	}
	svc := deps.Catalog

	// GET /shop/:kind takes the same query parameters as GET /catalog/:kind.
	e.GET("/shop/:kind", func(c echo.Context) error {
		d, err := svc.Descriptor(c.Param("kind"))
		if err != nil {
			return c.String(http.StatusNotFound, "Catalog not found")
		}
		v, err := catalog.ParseView(d, c.QueryParams())
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		ctx := c.Request().Context()
		res, v, err := svc.Browse(ctx, v)
		if err != nil {
			logger.WithContext(ctx).WithError(err).Error("catalog page")
			return c.String(api.StatusOf(err), "Error loading catalog")
		}
		facets, err := svc.Facets(ctx, d.Kind, v.Criteria)
		if err != nil {
			return c.String(api.StatusOf(err), "Error loading catalog")
		}

		data := baseData(svc, d.Label)
		data["Kind"] = d.Kind
		data["Result"] = res
		data["Filters"] = filterGroups(d, v, facets)
		data["ClearURL"] = link(d.Kind, v.ClearFilters(d))
		data["Pages"], data["PrevURL"], data["NextURL"] = pager(d.Kind, v, res.TotalPages)
		return c.Render(http.StatusOK, "catalog.html", data)
	})

	e.GET("/shop/:kind/:id", func(c echo.Context) error {
		it, err := svc.Item(c.Request().Context(), c.Param("kind"), c.Param("id"))
		if errors.Is(err, catalogService.ErrNotFound) || errors.Is(err, catalogService.ErrUnknownKind) {
			return c.String(http.StatusNotFound, "Product not found")
		}
		if err != nil {
			return c.String(api.StatusOf(err), "Error loading product")
		}
		data := baseData(svc, it.Name)
		data["Item"] = it
		return c.Render(http.StatusOK, "product.html", data)
	})
}

func baseData(svc *catalogService.Service, title string) map[string]interface{} {
	media := ""
	if config.AppConfig != nil {
		media = config.AppConfig.MediaURL
	}
	return map[string]interface{}{
		"Title":       title,
		"Kinds":       svc.Kinds(),
		"CriticalCSS": template.CSS(parts.GetCriticalCSS()),
		"MediaURL":    media,
	}
}

func link(kind string, v catalog.View) string {
	return "/shop/" + kind + "?" + v.Encode().Encode()
}

// filterGroups turns facets into toggle links; following a link flips one
// option and returns to page 1.
func filterGroups(d *catalog.Descriptor, v catalog.View, facets []catalog.Facet) []filterGroup {
	out := make([]filterGroup, 0, len(facets))
	for _, f := range facets {
		dim, _ := d.Dimension(f.Key)
		g := filterGroup{Label: f.Label}
		sel := v.Criteria.Selected(f.Key)
		for _, o := range f.Options {
			g.Options = append(g.Options, filterOption{
				Label:    dim.OptionLabel(o.ID),
				Count:    o.Count,
				Selected: sel.Has(o.ID),
				URL:      link(d.Kind, v.Toggle(f.Key, o.ID)),
			})
		}
		out = append(out, g)
	}
	return out
}

func pager(kind string, v catalog.View, totalPages int) ([]pageLink, string, string) {
	links := make([]pageLink, 0, totalPages)
	for p := 1; p <= totalPages; p++ {
		links = append(links, pageLink{Number: p, URL: link(kind, v.SetPage(p)), Current: p == v.Page.PageNumber})
	}
	var prev, next string
	if v.Page.PageNumber > 1 {
		prev = link(kind, v.SetPage(v.Page.PageNumber-1))
	}
	if v.Page.PageNumber < totalPages {
		next = link(kind, v.SetPage(v.Page.PageNumber+1))
	}
	return links, prev, next
}
