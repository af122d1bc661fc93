package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("EYEWEAR_TEST_KEY", "")
	if got := GetEnv("EYEWEAR_TEST_KEY", "def"); got != "def" {
		t.Errorf("GetEnv unset = %q, want def", got)
	}
	t.Setenv("EYEWEAR_TEST_KEY", "set")
	if got := GetEnv("EYEWEAR_TEST_KEY", "def"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
}

func TestNewConfig(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("CATALOG_PAGE_SIZE", "")
	cfg := newConfig()
	if cfg.CatalogSource != SourceSeed || cfg.CatalogCacheTTL != 5*time.Minute || cfg.CatalogPageSize != 0 {
		t.Errorf("defaults = %+v", cfg)
	}

	t.Setenv("CATALOG_SOURCE", SourceDB)
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	cfg = newConfig()
	if cfg.CatalogSource != SourceDB || cfg.CatalogCacheTTL != 30*time.Second || cfg.CatalogPageSize != 12 {
		t.Errorf("overrides = %+v", cfg)
	}

	t.Setenv("CATALOG_CACHE_TTL", "soon")
	if got := newConfig().CatalogCacheTTL; got != 5*time.Minute {
		t.Errorf("bad ttl = %v, want 5m fallback", got)
	}
}

func TestNewElasticsearch_Unconfigured(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "")
	es, err := NewElasticsearch()
	if err != nil || es != nil {
		t.Errorf("NewElasticsearch = %v, %v; want nil, nil", es, err)
	}
}

func TestInitRedis_Unconfigured(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	InitRedis()
	if RedisClient != nil {
		t.Error("RedisClient should be nil without REDIS_ADDR")
	}
}
