package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eyewear.GO/core/catalog"
	productRepo "eyewear.GO/model/repository/catalog"
)

// Source loads the full, unfiltered catalog of one kind in merchandising
// order. Inactive items are included; the engine drops them.
type Source interface {
	Load(ctx context.Context, kind string) ([]catalog.Item, error)
}

//go:embed seed/*.json
var seedFS embed.FS

// SeedSource serves the catalogs embedded in the binary.
type SeedSource struct{}

func (SeedSource) Load(ctx context.Context, kind string) ([]catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := seedFS.ReadFile("seed/" + kind + ".json")
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", kind, ErrUnknownKind)
	}
	var items []catalog.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("seed %s: %w", kind, err)
	}
	return items, nil
}

// DBSource reads catalogs from the catalog_product tables.
type DBSource struct {
	Repo *productRepo.ProductRepository
}

func (s DBSource) Load(ctx context.Context, kind string) ([]catalog.Item, error) {
	products, err := s.Repo.FindByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	items := make([]catalog.Item, 0, len(products))
	for i := range products {
		items = append(items, products[i].ToItem())
	}
	return items, nil
}

// HTTPSource fetches catalogs from a REST backend serving
// GET {BaseURL}/{kind} as a JSON array of items.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSource) Load(ctx context.Context, kind string) ([]catalog.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+url.PathEscape(kind), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", kind, ErrUnknownKind)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s", kind, res.StatusCode, strings.TrimSpace(string(body)))
	}
	var items []catalog.Item
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return items, nil
}
