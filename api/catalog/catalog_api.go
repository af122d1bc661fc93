package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"eyewear.GO/api"
	"eyewear.GO/core/catalog"
	"eyewear.GO/core/logger"
	catalogService "eyewear.GO/service/catalog"
)

func init() {
	api.RegisterRoute(RegisterCatalogRoutes)
}

type kindSummary struct {
	Kind              string             `json:"kind"`
	Label             string             `json:"label"`
	DefaultPageSize   int                `json:"default_page_size"`
	DefaultPriceRange catalog.PriceRange `json:"default_price_range"`
}

type optionsResponse struct {
	Kind              string              `json:"kind"`
	Dimensions        []catalog.Dimension `json:"dimensions"`
	DefaultPriceRange catalog.PriceRange  `json:"default_price_range"`
	DefaultPageSize   int                 `json:"default_page_size"`
}

// RegisterCatalogRoutes mounts the public storefront catalog endpoints.
func RegisterCatalogRoutes(e *echo.Echo, deps *api.Deps) {
	svc := deps.Catalog

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	g := e.Group("/catalog")

	// GET /catalog – catalogs in menu order
	g.GET("", func(c echo.Context) error {
		var out []kindSummary
		for _, d := range svc.Kinds() {
			out = append(out, kindSummary{
				Kind:              d.Kind,
				Label:             d.Label,
				DefaultPageSize:   d.DefaultPageSize,
				DefaultPriceRange: d.DefaultPriceRange,
			})
		}
		return c.JSON(http.StatusOK, out)
	})

	// GET /catalog/:kind?shape=ROUND,OVAL&min_price=0&max_price=900000&q=lily&page=2
	g.GET("/:kind", func(c echo.Context) error {
		kind := c.Param("kind")
		d, err := svc.Descriptor(kind)
		if err != nil {
			return api.Error(c, err)
		}
		v, err := catalog.ParseView(d, c.QueryParams())
		if err != nil {
			return api.BadRequest(c, err)
		}
		return query(c, svc, v)
	})

	// POST /catalog/:kind/query – same as GET with a JSON body
	g.POST("/:kind/query", func(c echo.Context) error {
		kind := c.Param("kind")
		d, err := svc.Descriptor(kind)
		if err != nil {
			return api.Error(c, err)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return api.BadRequest(c, err)
		}
		v, err := catalog.DecodeView(d, body)
		if err != nil {
			return api.BadRequest(c, err)
		}
		return query(c, svc, v)
	})

	g.GET("/:kind/options", func(c echo.Context) error {
		d, err := svc.Descriptor(c.Param("kind"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, optionsResponse{
			Kind:              d.Kind,
			Dimensions:        d.Dimensions,
			DefaultPriceRange: d.DefaultPriceRange,
			DefaultPageSize:   d.DefaultPageSize,
		})
	})

	// GET /catalog/:kind/facets – option counts under the same query parameters
	g.GET("/:kind/facets", func(c echo.Context) error {
		d, err := svc.Descriptor(c.Param("kind"))
		if err != nil {
			return api.Error(c, err)
		}
		v, err := catalog.ParseView(d, c.QueryParams())
		if err != nil {
			return api.BadRequest(c, err)
		}
		facets, err := svc.Facets(withKind(c), d.Kind, v.Criteria)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, facets)
	})

	g.GET("/:kind/items/:id", func(c echo.Context) error {
		it, err := svc.Item(withKind(c), c.Param("kind"), c.Param("id"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, it)
	})
}

func query(c echo.Context, svc *catalogService.Service, v catalog.View) error {
	res, err := svc.Query(withKind(c), v.Kind, v.Criteria, v.Page)
	if err != nil {
		return api.Error(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func withKind(c echo.Context) context.Context {
	return context.WithValue(c.Request().Context(), logger.KindKey, c.Param("kind"))
}
