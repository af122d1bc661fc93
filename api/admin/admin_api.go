package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"eyewear.GO/api"
	"eyewear.GO/core/auth"
	"eyewear.GO/model/repository/catalog"
	catalogService "eyewear.GO/service/catalog"
)

// productsPage is the back-office page guarding catalog maintenance.
const productsPage = "products"

func init() {
	api.RegisterModule(RegisterAdminRoutes)
}

type searchQuery struct {
	Q    string `query:"q" validate:"required,max=256"`
	Size int    `query:"size" validate:"gte=0,lte=100"`
}

// RegisterAdminRoutes mounts catalog maintenance and ACL endpoints on the
// authenticated /api group.
func RegisterAdminRoutes(apiGroup *echo.Group, deps *api.Deps) {
	svc := deps.Catalog
	table := deps.ACL

	// GET /api/acl – the active permission table
	apiGroup.GET("/acl", func(c echo.Context) error {
		return c.JSON(http.StatusOK, table)
	})

	// GET /api/acl/check?page=products:frame-1&role=Sale%20Staff
	apiGroup.GET("/acl/check", func(c echo.Context) error {
		page, role := c.QueryParam("page"), c.QueryParam("role")
		if page == "" || role == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "page and role are required"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"version": table.Version,
			"page":    page,
			"role":    role,
			"access":  table.CanAccess(page, role),
			"edit":    table.CanEdit(role, page),
		})
	})

	g := apiGroup.Group("/catalog/:kind")
	canView := auth.RequireAccess(table, productsPage)
	canEdit := auth.RequireEdit(table, productsPage)

	// POST /api/catalog/:kind/refresh – drop cached snapshot and reload
	g.POST("/refresh", func(c echo.Context) error {
		start := time.Now()
		n, err := svc.Refresh(c.Request().Context(), c.Param("kind"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"kind":                c.Param("kind"),
			"items":               n,
			"request_duration_ms": time.Since(start).Milliseconds(),
		})
	}, canEdit)

	// POST /api/catalog/:kind/reindex – publish the snapshot to Elasticsearch
	g.POST("/reindex", func(c echo.Context) error {
		if deps.Indexer == nil || !deps.Indexer.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search indexing not configured"})
		}
		ctx := c.Request().Context()
		items, err := svc.Snapshot(ctx, c.Param("kind"))
		if err != nil {
			return api.Error(c, err)
		}
		n, err := deps.Indexer.Reindex(ctx, c.Param("kind"), items)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error(), "indexed": n})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"index":   deps.Indexer.IndexName(c.Param("kind")),
			"indexed": n,
		})
	}, canEdit)

	// GET /api/catalog/:kind/search?q=lily&size=10 – full-text search over the index
	g.GET("/search", func(c echo.Context) error {
		if deps.Indexer == nil || !deps.Indexer.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search indexing not configured"})
		}
		var q searchQuery
		if err := c.Bind(&q); err != nil {
			return api.BadRequest(c, err)
		}
		if err := c.Validate(&q); err != nil {
			return api.BadRequest(c, err)
		}
		ids, total, err := deps.Indexer.Search(c.Request().Context(), c.Param("kind"), q.Q, q.Size)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"ids": ids, "total": total})
	}, canView)

	// POST /api/catalog/:kind/import – CSV upsert into the catalog tables
	g.POST("/import", func(c echo.Context) error {
		if deps.DB == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "database not configured"})
		}
		start := time.Now()
		file, err := c.FormFile("file")
		if err != nil {
			return api.BadRequest(c, err)
		}
		f, err := file.Open()
		if err != nil {
			return api.BadRequest(c, err)
		}
		defer f.Close()

		res, err := catalogService.ImportCSV(c.Request().Context(), catalog.GetProductRepository(deps.DB), c.Param("kind"), f)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			status := http.StatusBadRequest
			if api.StatusOf(err) == http.StatusNotFound {
				status = http.StatusNotFound
			}
			return c.JSON(status, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"rows":                res.TotalRows,
			"created":             res.Created,
			"updated":             res.Updated,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	}, canEdit)
}
