package graphqlserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	catalogService "eyewear.GO/service/catalog"
)

func newSchema(t *testing.T) func(query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	schema, err := NewSchema(catalogService.New(catalogService.Options{Source: catalogService.SeedSource{}}))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return func(query string, vars map[string]interface{}) map[string]interface{} {
		t.Helper()
		resp := schema.Exec(context.Background(), query, "", vars)
		if len(resp.Errors) > 0 {
			t.Fatalf("Exec errors: %v", resp.Errors)
		}
		var out map[string]interface{}
		if err := json.Unmarshal(resp.Data, &out); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		return out
	}
}

func TestSchema_CatalogKinds(t *testing.T) {
	exec := newSchema(t)
	data := exec(`{ catalogKinds { kind defaultPageSize } }`, nil)
	kinds := data["catalogKinds"].([]interface{})
	if len(kinds) != 3 {
		t.Fatalf("catalogKinds = %v", kinds)
	}
	if k := kinds[0].(map[string]interface{}); k["kind"] != "frames" || k["defaultPageSize"] != float64(6) {
		t.Errorf("first kind = %v", k)
	}
}

func TestSchema_CatalogFilterAndPage(t *testing.T) {
	exec := newSchema(t)
	data := exec(`query($f: CatalogFilter) {
		catalog(kind: "frames", filter: $f, page: 1, pageSize: 4) {
			totalItems totalPages currentPage pageSize
			items { id name price attributes { key values } }
		}
	}`, map[string]interface{}{
		"f": map[string]interface{}{
			"selections": []interface{}{
				map[string]interface{}{"dimension": "shape", "values": []interface{}{"ROUND"}},
			},
		},
	})
	page := data["catalog"].(map[string]interface{})
	if page["pageSize"] != float64(4) || page["currentPage"] != float64(1) {
		t.Errorf("page = %v", page)
	}
	items := page["items"].([]interface{})
	if len(items) == 0 || len(items) > 4 {
		t.Fatalf("items = %d", len(items))
	}
	for _, raw := range items {
		it := raw.(map[string]interface{})
		found := false
		for _, a := range it["attributes"].([]interface{}) {
			attr := a.(map[string]interface{})
			if attr["key"] != "shape" {
				continue
			}
			for _, v := range attr["values"].([]interface{}) {
				if v == "ROUND" {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("item %v is not ROUND", it["id"])
		}
	}
}

func TestSchema_CatalogOptionsAndItem(t *testing.T) {
	exec := newSchema(t)
	data := exec(`{ catalogOptions(kind: "lenses") { key options { id label } } }`, nil)
	if dims := data["catalogOptions"].([]interface{}); len(dims) == 0 {
		t.Fatal("no lens dimensions")
	}

	data = exec(`{ catalogItem(kind: "frames", id: "does-not-exist") { id } }`, nil)
	if data["catalogItem"] != nil {
		t.Errorf("catalogItem = %v, want null", data["catalogItem"])
	}
}

func TestSchema_UnknownKindIsError(t *testing.T) {
	schema, err := NewSchema(catalogService.New(catalogService.Options{Source: catalogService.SeedSource{}}))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	resp := schema.Exec(context.Background(), `{ catalog(kind: "hats") { totalItems } }`, "", nil)
	if len(resp.Errors) == 0 || !strings.Contains(resp.Errors[0].Message, "unknown catalog kind") {
		t.Errorf("errors = %v", resp.Errors)
	}
}

func TestSchema_TraceExtension(t *testing.T) {
	exec := newSchema(t)
	data := exec(`{ _extension(name: "catalogTrace", args: "{\"kind\":\"frames\",\"selections\":{\"shape\":\"ROUND\"}}") }`, nil)
	var res struct {
		Kind  string `json:"kind"`
		Total int    `json:"total"`
		Trace struct {
			Input      int            `json:"input"`
			Dimensions map[string]int `json:"dimensions"`
			Search     int            `json:"search"`
		} `json:"trace"`
	}
	if err := json.Unmarshal([]byte(data["_extension"].(string)), &res); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if res.Kind != "frames" || res.Trace.Input != 16 {
		t.Errorf("trace = %+v", res)
	}
	if _, ok := res.Trace.Dimensions["shape"]; !ok {
		t.Errorf("no shape stage in %+v", res.Trace)
	}
	if res.Trace.Search != res.Total {
		t.Errorf("last stage %d, total %d", res.Trace.Search, res.Total)
	}
}
