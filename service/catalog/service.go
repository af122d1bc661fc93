package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"eyewear.GO/core/cache"
	"eyewear.GO/core/catalog"
	"eyewear.GO/core/logger"
)

var (
	ErrUnknownKind = errors.New("unknown catalog kind")
	ErrNotFound    = errors.New("catalog item not found")
)

const redisKeyPrefix = "catalog:snapshot:"

// Options configures a Service. Source is required; a nil Cache gets a
// private one and a nil Redis disables the shared layer.
type Options struct {
	Source Source
	Cache  *cache.Cache
	Redis  *redis.Client
	TTL    time.Duration
	// PageSize overrides the descriptors' default page size when > 0.
	PageSize int
}

// Service answers catalog queries over snapshots loaded from a Source.
// Snapshots are cached in process and, when configured, in Redis.
type Service struct {
	source      Source
	cache       *cache.Cache
	redis       *redis.Client
	ttl         time.Duration
	descriptors map[string]*catalog.Descriptor
	order       []string
	loads       singleflight.Group
}

func New(opts Options) *Service {
	c := opts.Cache
	if c == nil {
		c = cache.NewCache()
	}
	s := &Service{
		source:      opts.Source,
		cache:       c,
		redis:       opts.Redis,
		ttl:         opts.TTL,
		descriptors: make(map[string]*catalog.Descriptor),
	}
	for _, d := range Descriptors() {
		if opts.PageSize > 0 {
			d.DefaultPageSize = opts.PageSize
		}
		s.descriptors[d.Kind] = d
		s.order = append(s.order, d.Kind)
	}
	return s
}

// Kinds returns the catalog descriptors in menu order.
func (s *Service) Kinds() []*catalog.Descriptor {
	out := make([]*catalog.Descriptor, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.descriptors[k])
	}
	return out
}

func (s *Service) Descriptor(kind string) (*catalog.Descriptor, error) {
	d, ok := s.descriptors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return d, nil
}

// Options returns the filter dimensions of kind.
func (s *Service) Options(kind string) ([]catalog.Dimension, error) {
	d, err := s.Descriptor(kind)
	if err != nil {
		return nil, err
	}
	return d.Dimensions, nil
}

// Query filters and paginates the current snapshot of kind. A nil price
// range in c falls back to the descriptor default.
func (s *Service) Query(ctx context.Context, kind string, c catalog.Criteria, page catalog.PageRequest) (catalog.PageResult, error) {
	d, items, err := s.load(ctx, kind)
	if err != nil {
		return catalog.PageResult{}, err
	}
	c = withDefaultPrice(d, c)
	filtered, tr := d.ApplyFiltersTrace(items, c)
	logger.WithContext(ctx).WithFields(logrus.Fields{
		"kind":  kind,
		"trace": tr,
		"page":  page.PageNumber,
	}).Debug("catalog query")
	return catalog.Paginate(filtered, page)
}

// Facets returns per-option match counts of kind under c.
func (s *Service) Facets(ctx context.Context, kind string, c catalog.Criteria) ([]catalog.Facet, error) {
	d, items, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return d.Facets(items, withDefaultPrice(d, c)), nil
}

func withDefaultPrice(d *catalog.Descriptor, c catalog.Criteria) catalog.Criteria {
	if c.Price != nil {
		return c
	}
	c = c.Clone()
	p := d.DefaultPriceRange
	c.Price = &p
	return c
}

// Browse runs the query a view describes and returns the view reconciled
// against the result, so a page beyond the end is pulled back to the last
// page.
func (s *Service) Browse(ctx context.Context, v catalog.View) (catalog.PageResult, catalog.View, error) {
	d, items, err := s.load(ctx, v.Kind)
	if err != nil {
		return catalog.PageResult{}, v, err
	}
	filtered := d.ApplyFilters(items, v.Criteria)
	res, err := catalog.Paginate(filtered, v.Page)
	if err != nil {
		return catalog.PageResult{}, v, err
	}
	next := v.Reconcile(res)
	if next.Page == v.Page {
		return res, next, nil
	}
	res, err = catalog.Paginate(filtered, next.Page)
	return res, next, err
}

// Item returns one item of kind by id.
func (s *Service) Item(ctx context.Context, kind, id string) (catalog.DisplayItem, error) {
	_, items, err := s.load(ctx, kind)
	if err != nil {
		return catalog.DisplayItem{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return catalog.Display(it), nil
		}
	}
	return catalog.DisplayItem{}, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, id)
}

// Snapshot returns the full catalog of kind, inactive items included.
func (s *Service) Snapshot(ctx context.Context, kind string) ([]catalog.Item, error) {
	_, items, err := s.load(ctx, kind)
	return items, err
}

// Refresh drops the cached snapshot of kind and loads it again from the
// source.
func (s *Service) Refresh(ctx context.Context, kind string) (int, error) {
	if _, err := s.Descriptor(kind); err != nil {
		return 0, err
	}
	s.cache.DeleteByTag(kind)
	if s.redis != nil {
		if err := s.redis.Del(ctx, redisKeyPrefix+kind).Err(); err != nil {
			logger.WithContext(ctx).WithError(err).WithField("kind", kind).Warn("redis invalidate failed")
		}
	}
	items, err := s.Snapshot(ctx, kind)
	return len(items), err
}

// Warm refreshes every kind concurrently.
func (s *Service) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range s.order {
		g.Go(func() error {
			n, err := s.Refresh(ctx, kind)
			if err != nil {
				return err
			}
			logger.WithContext(ctx).WithFields(logrus.Fields{"kind": kind, "items": n}).Info("catalog warmed")
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) load(ctx context.Context, kind string) (*catalog.Descriptor, []catalog.Item, error) {
	d, err := s.Descriptor(kind)
	if err != nil {
		return nil, nil, err
	}
	key := cache.Key("catalog", kind)
	if v, ok := s.cache.Get(key); ok {
		return d, v.([]catalog.Item), nil
	}

	// the load is shared, so one caller going away must not fail the rest
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.loads.Do(kind, func() (interface{}, error) {
		ctx := shared
		if items, ok := s.fromRedis(ctx, kind); ok {
			s.cache.Set(key, items, s.ttl, kind)
			return items, nil
		}
		items, err := s.source.Load(ctx, kind)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, items, s.ttl, kind)
		s.toRedis(ctx, kind, items)
		return items, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return d, v.([]catalog.Item), nil
}

func (s *Service) fromRedis(ctx context.Context, kind string) ([]catalog.Item, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, redisKeyPrefix+kind).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithContext(ctx).WithError(err).WithField("kind", kind).Warn("redis read failed")
		}
		return nil, false
	}
	var items []catalog.Item
	if err := json.Unmarshal(data, &items); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("kind", kind).Warn("redis snapshot corrupt")
		return nil, false
	}
	return items, true
}

func (s *Service) toRedis(ctx context.Context, kind string, items []catalog.Item) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, redisKeyPrefix+kind, data, s.ttl).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("kind", kind).Warn("redis write failed")
	}
}
