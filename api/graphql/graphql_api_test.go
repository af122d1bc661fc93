package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"eyewear.GO/api"
	catalogService "eyewear.GO/service/catalog"
)

func newServer() *echo.Echo {
	e := echo.New()
	RegisterGraphQLRoutes(e, &api.Deps{
		Catalog: catalogService.New(catalogService.Options{Source: catalogService.SeedSource{}}),
	})
	return e
}

func TestGraphQL_Post(t *testing.T) {
	e := newServer()
	body := `{"query":"query($k: String!) { catalog(kind: $k, pageSize: 5) { totalItems pageSize items { id urlKey } } }","variables":{"k":"accessories"}}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Catalog struct {
				TotalItems int `json:"totalItems"`
				PageSize   int `json:"pageSize"`
				Items      []struct {
					ID     string `json:"id"`
					URLKey string `json:"urlKey"`
				} `json:"items"`
			} `json:"catalog"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	if resp.Data.Catalog.PageSize != 5 || len(resp.Data.Catalog.Items) > 5 {
		t.Errorf("catalog = %+v", resp.Data.Catalog)
	}
	for _, it := range resp.Data.Catalog.Items {
		if it.URLKey == "" {
			t.Errorf("item %s has no url key", it.ID)
		}
	}
}

func TestGraphQL_Playground(t *testing.T) {
	e := newServer()
	req := httptest.NewRequest(http.MethodGet, "/playground", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "GraphQLPlayground") {
		t.Errorf("playground: %d", rec.Code)
	}
}
