package config

import (
	"os"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticIndexPrefix returns the prefix for catalog index names.
func ElasticIndexPrefix() string {
	return GetEnv("ELASTICSEARCH_INDEX_PREFIX", "eyewear")
}

// NewElasticsearch returns a client for ELASTICSEARCH_HOST, or nil when
// search indexing is not configured.
func NewElasticsearch() (*elasticsearch.Client, error) {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return nil, nil
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
		Username:  os.Getenv("ELASTICSEARCH_USER"),
		Password:  os.Getenv("ELASTICSEARCH_PASS"),
	})
}
