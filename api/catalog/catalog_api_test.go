package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"eyewear.GO/api"
	"eyewear.GO/core/catalog"
	catalogService "eyewear.GO/service/catalog"
)

func setupEcho() *echo.Echo {
	e := echo.New()
	RegisterCatalogRoutes(e, &api.Deps{
		Catalog: catalogService.New(catalogService.Options{Source: catalogService.SeedSource{}}),
	})
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) catalog.PageResult {
	t.Helper()
	var res catalog.PageResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	return res
}

func TestHealth(t *testing.T) {
	rec := do(setupEcho(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestListKinds(t *testing.T) {
	rec := do(setupEcho(), http.MethodGet, "/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var kinds []kindSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &kinds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(kinds) != 3 || kinds[0].Kind != "frames" {
		t.Errorf("kinds = %+v", kinds)
	}
}

func TestQuery_GET(t *testing.T) {
	e := setupEcho()
	res := decodePage(t, do(e, http.MethodGet, "/catalog/frames", ""))
	if res.TotalItems != 16 || res.TotalPages != 3 || len(res.Items) != 6 || res.CurrentPage != 1 {
		t.Errorf("default page = %+v", res)
	}

	res = decodePage(t, do(e, http.MethodGet, "/catalog/frames?shape=ROUND,OVAL&page_size=10", ""))
	if res.TotalItems != 4 || res.PageSize != 10 {
		t.Errorf("ROUND|OVAL = %d items, size %d", res.TotalItems, res.PageSize)
	}

	res = decodePage(t, do(e, http.MethodGet, "/catalog/frames?shape=ROUND&page=3", ""))
	if len(res.Items) != 0 || res.TotalPages != 1 || res.CurrentPage != 3 {
		t.Errorf("out of range page = %+v", res)
	}
}

func TestQuery_GETErrors(t *testing.T) {
	e := setupEcho()
	tests := []struct {
		target string
		want   int
	}{
		{"/catalog/hats", http.StatusNotFound},
		{"/catalog/frames?page=abc", http.StatusBadRequest},
		{"/catalog/frames?page_size=0", http.StatusBadRequest},
		{"/catalog/frames?min_price=10&max_price=1", http.StatusOK},
	}
	for _, tt := range tests {
		if rec := do(e, http.MethodGet, tt.target, ""); rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d (%s)", tt.target, rec.Code, tt.want, rec.Body.String())
		}
	}
}

func TestQuery_POST(t *testing.T) {
	e := setupEcho()
	body := `{"selections":{"accessory_type":["CASE"]},"search":"hộp","page_size":2}`
	rec := do(e, http.MethodPost, "/catalog/accessories/query", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	res := decodePage(t, rec)
	if res.PageSize != 2 || len(res.Items) != 2 {
		t.Errorf("POST query = %+v", res)
	}
	for _, it := range res.Items {
		if it.Attributes["accessory_type"][0] != "CASE" {
			t.Errorf("%s is not a CASE", it.ID)
		}
	}

	if rec := do(e, http.MethodPost, "/catalog/accessories/query", `{"page_size":-3}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid body = %d, want 400", rec.Code)
	}
}

func TestOptions(t *testing.T) {
	rec := do(setupEcho(), http.MethodGet, "/catalog/lenses/options", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out optionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Dimensions) != 3 || out.Dimensions[1].Key != "technology" {
		t.Errorf("dimensions = %+v", out.Dimensions)
	}
}

func TestItem(t *testing.T) {
	e := setupEcho()
	rec := do(e, http.MethodGet, "/catalog/frames/items/frame-007-58cc-4372-a567-0e02b2c3d479", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var it catalog.DisplayItem
	if err := json.Unmarshal(rec.Body.Bytes(), &it); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if it.Price != 750000 || it.Attributes["shape"][0] != "ROUND" {
		t.Errorf("item = %+v", it)
	}
	if rec := do(e, http.MethodGet, "/catalog/frames/items/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing item = %d, want 404", rec.Code)
	}
}

func TestFacets(t *testing.T) {
	e := setupEcho()
	rec := do(e, http.MethodGet, "/catalog/frames/facets?shape=ROUND", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("facets = %d %s", rec.Code, rec.Body.String())
	}
	var facets []catalog.Facet
	if err := json.Unmarshal(rec.Body.Bytes(), &facets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var shapeTotal, roundCount int
	for _, f := range facets {
		if f.Key != "shape" {
			continue
		}
		for _, o := range f.Options {
			shapeTotal += o.Count
			if o.ID == "ROUND" {
				roundCount = o.Count
			}
		}
	}
	if roundCount == 0 || shapeTotal <= roundCount {
		t.Errorf("shape facet ignores own selection: round=%d total=%d", roundCount, shapeTotal)
	}

	if rec := do(e, http.MethodGet, "/catalog/hats/facets", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown kind = %d, want 404", rec.Code)
	}
}
