package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"eyewear.GO/core/catalog"
	productRepo "eyewear.GO/model/repository/catalog"
)

type countingSource struct {
	inner Source
	calls atomic.Int32
}

func (s *countingSource) Load(ctx context.Context, kind string) ([]catalog.Item, error) {
	s.calls.Add(1)
	return s.inner.Load(ctx, kind)
}

type failingSource struct{}

func (failingSource) Load(context.Context, string) ([]catalog.Item, error) {
	return nil, errors.New("backend down")
}

// gatedSource blocks every load until release is closed and then fails
// with the context's error, if any.
type gatedSource struct {
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSource) Load(ctx context.Context, kind string) ([]catalog.Item, error) {
	close(s.entered)
	<-s.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SeedSource{}.Load(ctx, kind)
}

func newTestService() (*Service, *countingSource) {
	src := &countingSource{inner: SeedSource{}}
	return New(Options{Source: src, TTL: time.Minute}), src
}

func testDB(t *testing.T) *productRepo.ProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return productRepo.NewProductRepository(db)
}

func TestDescriptors(t *testing.T) {
	ds := Descriptors()
	if len(ds) != 3 || ds[0].Kind != KindFrames || ds[1].Kind != KindLenses || ds[2].Kind != KindAccessories {
		t.Fatalf("Descriptors order = %v", ds)
	}
	for _, d := range ds {
		if d.DefaultPageSize != 6 {
			t.Errorf("%s page size = %d, want 6", d.Kind, d.DefaultPageSize)
		}
	}
	if ds[2].DefaultPriceRange.Max != 500000 {
		t.Errorf("accessories max price = %d", ds[2].DefaultPriceRange.Max)
	}
	tech, ok := ds[1].Dimension("technology")
	if !ok || len(tech.Options) != len(TechnologyNames) {
		t.Errorf("technology options = %v", tech.Options)
	}
}

func TestSeedSource_AllKinds(t *testing.T) {
	for _, d := range Descriptors() {
		items, err := SeedSource{}.Load(context.Background(), d.Kind)
		if err != nil {
			t.Fatalf("Load(%s): %v", d.Kind, err)
		}
		if len(items) != 16 {
			t.Errorf("%s: %d items, want 16", d.Kind, len(items))
		}
	}
	if _, err := (SeedSource{}).Load(context.Background(), "hats"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind err = %v", err)
	}
}

func TestService_QueryFrames(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	res, err := s.Query(ctx, KindFrames, catalog.Criteria{}, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalItems != 16 || res.TotalPages != 3 || len(res.Items) != 6 {
		t.Errorf("unfiltered = %d items, %d pages, %d on page", res.TotalItems, res.TotalPages, len(res.Items))
	}
	if res.Items[0].ID != "frame-001-58cc-4372-a567-0e02b2c3d479" || res.Items[0].Price != 560000 {
		t.Errorf("first item = %s @ %d", res.Items[0].ID, res.Items[0].Price)
	}

	round := catalog.Criteria{}.Toggle("shape", "ROUND")
	res, err = s.Query(ctx, KindFrames, round, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if err != nil {
		t.Fatalf("Query ROUND: %v", err)
	}
	if res.TotalItems != 2 || res.TotalPages != 1 {
		t.Errorf("ROUND = %d items, %d pages", res.TotalItems, res.TotalPages)
	}

	narrow := catalog.Criteria{}.Toggle("width", "NARROW")
	res, _ = s.Query(ctx, KindFrames, narrow, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if res.TotalItems != 3 {
		t.Errorf("NARROW = %d items, want 3", res.TotalItems)
	}
}

func TestService_QueryLensesByTechnologyName(t *testing.T) {
	s, _ := newTestService()
	photo := catalog.Criteria{}.Toggle("technology", TechPhotochromic)
	res, err := s.Query(context.Background(), KindLenses, photo, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalItems != 4 {
		t.Errorf("photochromic = %d, want 4", res.TotalItems)
	}

	byName := catalog.Criteria{Search: "night vision"}
	res, _ = s.Query(context.Background(), KindLenses, byName, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if res.TotalItems != 1 {
		t.Errorf("search by technology name = %d, want 1", res.TotalItems)
	}
}

func TestService_QueryAccessoriesSearchWithCeiling(t *testing.T) {
	s, _ := newTestService()
	c := catalog.Criteria{Search: "kính", Price: &catalog.PriceRange{Min: 0, Max: 60000}}
	res, err := s.Query(context.Background(), KindAccessories, c, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalItems != 4 {
		t.Errorf("kính <= 60000 = %d, want 4", res.TotalItems)
	}
	for _, it := range res.Items {
		if it.Price > 60000 {
			t.Errorf("%s price %d above ceiling", it.ID, it.Price)
		}
	}
}

func TestService_Errors(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	if _, err := s.Query(ctx, "hats", catalog.Criteria{}, catalog.PageRequest{PageNumber: 1, PageSize: 6}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind err = %v", err)
	}
	if _, err := s.Query(ctx, KindFrames, catalog.Criteria{}, catalog.PageRequest{PageNumber: 1}); !errors.Is(err, catalog.ErrInvalidPageSize) {
		t.Errorf("zero page size err = %v", err)
	}
	if _, err := s.Item(ctx, KindFrames, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing item err = %v", err)
	}

	broken := New(Options{Source: failingSource{}})
	if _, err := broken.Query(ctx, KindFrames, catalog.Criteria{}, catalog.PageRequest{PageNumber: 1, PageSize: 6}); err == nil {
		t.Error("source failure: want error")
	}
}

func TestService_Item(t *testing.T) {
	s, _ := newTestService()
	it, err := s.Item(context.Background(), KindAccessories, "acc-001-58cc-4372-a567-0e02b2c3d479")
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if it.Price != 75000 || it.Image == "" || it.URLKey == "" {
		t.Errorf("Item = %+v", it)
	}
}

func TestService_BrowseReconcilesPage(t *testing.T) {
	s, _ := newTestService()
	d, _ := s.Descriptor(KindFrames)
	v := catalog.NewView(d).Toggle("shape", "ROUND").SetPage(3)

	res, next, err := s.Browse(context.Background(), v)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if next.Page.PageNumber != 1 || res.CurrentPage != 1 || len(res.Items) != 2 {
		t.Errorf("Browse = page %d, current %d, %d items", next.Page.PageNumber, res.CurrentPage, len(res.Items))
	}
}

func TestService_SnapshotCached(t *testing.T) {
	s, src := newTestService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := s.Snapshot(ctx, KindFrames); err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
	n, err := s.Refresh(ctx, KindFrames)
	if err != nil || n != 16 {
		t.Fatalf("Refresh = %d, %v", n, err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source calls after refresh = %d, want 2", got)
	}
	if _, err := s.Refresh(ctx, "hats"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Refresh unknown err = %v", err)
	}
}

func TestService_SharedLoadOutlivesCancelledCaller(t *testing.T) {
	src := &gatedSource{entered: make(chan struct{}), release: make(chan struct{})}
	s := New(Options{Source: src, TTL: time.Minute})

	first, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 2)
	go func() {
		_, err := s.Snapshot(first, KindFrames)
		errs <- err
	}()
	<-src.entered
	go func() {
		_, err := s.Snapshot(context.Background(), KindFrames)
		errs <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(src.release)

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Errorf("Snapshot: %v", err)
		}
	}
}

func TestService_Warm(t *testing.T) {
	s, src := newTestService()
	if err := s.Warm(context.Background()); err != nil {
		t.Fatalf("Warm: %v", err)
	}
	if got := src.calls.Load(); got != 3 {
		t.Errorf("source calls = %d, want 3", got)
	}
	if err := New(Options{Source: failingSource{}}).Warm(context.Background()); err == nil {
		t.Error("Warm with failing source: want error")
	}
}

func TestService_PageSizeOverride(t *testing.T) {
	s := New(Options{Source: SeedSource{}, PageSize: 10})
	d, _ := s.Descriptor(KindLenses)
	if d.DefaultPageSize != 10 {
		t.Errorf("page size = %d, want 10", d.DefaultPageSize)
	}
	if Descriptors()[1].DefaultPageSize != 6 {
		t.Error("override must not leak into fresh descriptors")
	}
}

func TestHTTPSource(t *testing.T) {
	items, _ := SeedSource{}.Load(context.Background(), KindAccessories)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog/accessories":
			_ = json.NewEncoder(w).Encode(items)
		case "/catalog/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/catalog/")
	got, err := src.Load(context.Background(), KindAccessories)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 16 || got[0].ID != items[0].ID {
		t.Errorf("Load = %d items", len(got))
	}
	if _, err := src.Load(context.Background(), "hats"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("404 err = %v, want ErrUnknownKind", err)
	}
	if _, err := src.Load(context.Background(), "broken"); err == nil {
		t.Error("500: want error")
	}
}

func TestDBSource_AfterSeed(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()
	written, err := SeedDB(ctx, repo, SeedSource{})
	if err != nil {
		t.Fatalf("SeedDB: %v", err)
	}
	if written[KindFrames] != 16 || written[KindLenses] != 16 || written[KindAccessories] != 16 {
		t.Errorf("written = %v", written)
	}

	s := New(Options{Source: DBSource{Repo: repo}})
	round := catalog.Criteria{}.Toggle("shape", "ROUND")
	res, err := s.Query(ctx, KindFrames, round, catalog.PageRequest{PageNumber: 1, PageSize: 6})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalItems != 2 || res.Items[0].ID != "frame-007-58cc-4372-a567-0e02b2c3d479" {
		t.Errorf("DB ROUND = %d items, first %v", res.TotalItems, res.Items)
	}
}
