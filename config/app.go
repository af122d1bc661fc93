package config

import (
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

const (
	SourceSeed = "seed"
	SourceDB   = "db"
	SourceHTTP = "http"
)

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// CatalogSource selects where catalog snapshots come from: seed, db or http.
	CatalogSource string
	// CatalogRemoteURL is the base URL of the REST backend for the http source.
	CatalogRemoteURL string
	CatalogCacheTTL  time.Duration
	// CatalogPageSize overrides every descriptor's default page size when > 0.
	CatalogPageSize int
	MediaURL        string
	ACLFile         string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = newConfig()
	})
}

func newConfig() *Config {
	return &Config{
		AppName:          GetEnv("APP_NAME", "eyewear"),
		Port:             GetEnv("PORT", "8080"),
		Env:              GetEnv("APP_ENV", "development"),
		Debug:            GetEnv("DEBUG", "") == "true",
		CatalogSource:    GetEnv("CATALOG_SOURCE", SourceSeed),
		CatalogRemoteURL: GetEnv("CATALOG_REMOTE_URL", ""),
		CatalogCacheTTL:  parseDuration(GetEnv("CATALOG_CACHE_TTL", "5m")),
		CatalogPageSize:  parseInt(GetEnv("CATALOG_PAGE_SIZE", "0")),
		MediaURL:         GetEnv("MEDIA_URL", ""),
		ACLFile:          GetEnv("ACL_FILE", ""),
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
