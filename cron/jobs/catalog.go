package jobs

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"eyewear.GO/config"
	"eyewear.GO/core/logger"
	"eyewear.GO/cron"
)

const (
	JobCatalogWarm    = "catalogwarm"
	JobCatalogReindex = "catalogreindex"
)

var errNoIndexer = errors.New("search indexer not configured")

func init() {
	cron.Register(JobCatalogWarm, config.GetEnv("CRON_CATALOG_WARM", "@every 5m"), warmCatalog)
	cron.Register(JobCatalogReindex, config.GetEnv("CRON_CATALOG_REINDEX", "@every 1h"), reindexCatalog)
}

// warmCatalog reloads every snapshot so page views never pay the source latency.
func warmCatalog(ctx context.Context, deps *cron.Deps) error {
	return deps.Catalog.Warm(ctx)
}

// reindexCatalog pushes the current snapshot of every kind to Elasticsearch.
func reindexCatalog(ctx context.Context, deps *cron.Deps) error {
	if deps.Indexer == nil || !deps.Indexer.Enabled() {
		return errNoIndexer
	}
	for _, d := range deps.Catalog.Kinds() {
		items, err := deps.Catalog.Snapshot(ctx, d.Kind)
		if err != nil {
			return err
		}
		n, err := deps.Indexer.Reindex(ctx, d.Kind, items)
		if err != nil {
			return err
		}
		logger.WithContext(ctx).WithFields(logrus.Fields{"kind": d.Kind, "indexed": n}).Info("catalog reindexed")
	}
	return nil
}
