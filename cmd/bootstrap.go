package cmd

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"eyewear.GO/api"
	"eyewear.GO/config"
	"eyewear.GO/core/acl"
	"eyewear.GO/core/cache"
	"eyewear.GO/core/logger"
	productRepo "eyewear.GO/model/repository/catalog"
	catalogService "eyewear.GO/service/catalog"
	"eyewear.GO/service/search"
)

var errNoDB = errors.New("database not configured (set DB_DRIVER or MYSQL_*)")

// openDB connects and pings the configured database.
func openDB() (*gorm.DB, error) {
	if !config.DBConfigured() {
		return nil, errNoDB
	}
	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db instance: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// buildDeps wires the catalog service and its optional collaborators from
// the environment. Missing Redis, Elasticsearch or database settings
// disable the matching feature instead of failing.
func buildDeps(ctx context.Context) (*api.Deps, error) {
	log := logger.GetAppLogger()
	cfg := config.AppConfig
	deps := &api.Deps{ACL: acl.Default()}

	if cfg.ACLFile != "" {
		t, err := acl.Load(cfg.ACLFile)
		if err != nil {
			return nil, err
		}
		deps.ACL = t
	}

	if config.DBConfigured() {
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		log.Info("Database connection successful.")
		deps.DB = db
	}

	config.InitRedis()
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis configured but not reachable, shared snapshot cache disabled.")
			config.RedisClient = nil
		} else {
			log.Info("Redis connection successful.")
		}
	}

	var source catalogService.Source
	switch cfg.CatalogSource {
	case config.SourceDB:
		if deps.DB == nil {
			return nil, fmt.Errorf("catalog source %q: %w", cfg.CatalogSource, errNoDB)
		}
		source = catalogService.DBSource{Repo: productRepo.GetProductRepository(deps.DB)}
	case config.SourceHTTP:
		if cfg.CatalogRemoteURL == "" {
			return nil, fmt.Errorf("catalog source %q: CATALOG_REMOTE_URL is empty", cfg.CatalogSource)
		}
		source = catalogService.NewHTTPSource(cfg.CatalogRemoteURL)
	case config.SourceSeed, "":
		source = catalogService.SeedSource{}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	deps.Catalog = catalogService.New(catalogService.Options{
		Source:   source,
		Cache:    cache.GetInstance(),
		Redis:    config.RedisClient,
		TTL:      cfg.CatalogCacheTTL,
		PageSize: cfg.CatalogPageSize,
	})

	es, err := config.NewElasticsearch()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	deps.Indexer = search.NewIndexer(es, config.ElasticIndexPrefix())
	if !deps.Indexer.Enabled() {
		log.Info("Elasticsearch not configured, search indexing disabled.")
	}
	return deps, nil
}
