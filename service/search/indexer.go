package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"eyewear.GO/core/catalog"
	"eyewear.GO/core/logger"
)

// Indexer publishes catalog snapshots to Elasticsearch, one index per kind.
// A nil client disables it.
type Indexer struct {
	client *elasticsearch.Client
	prefix string
}

func NewIndexer(client *elasticsearch.Client, prefix string) *Indexer {
	if prefix == "" {
		prefix = "eyewear"
	}
	return &Indexer{client: client, prefix: prefix}
}

func (ix *Indexer) Enabled() bool { return ix.client != nil }

// IndexName returns <prefix>_catalog_<kind>.
func (ix *Indexer) IndexName(kind string) string {
	return fmt.Sprintf("%s_catalog_%s", ix.prefix, kind)
}

type document struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Price      int64               `json:"price"`
	BasePrice  int64               `json:"base_price"`
	URLKey     string              `json:"url_key"`
	Image      string              `json:"image,omitempty"`
	Badge      string              `json:"badge,omitempty"`
	SKUs       []string            `json:"skus,omitempty"`
	Attributes map[string][]string `json:"attributes,omitempty"`
	Text       map[string][]string `json:"text,omitempty"`
}

func toDocument(it catalog.Item) document {
	d := catalog.Display(it)
	doc := document{
		ID:         it.ID,
		Name:       it.Name,
		Price:      d.Price,
		BasePrice:  it.BasePrice,
		URLKey:     d.URLKey,
		Image:      d.Image,
		Badge:      it.Badge,
		Attributes: it.Attributes,
		Text:       it.Text,
	}
	for _, v := range it.Variants {
		if v.IsActive && v.SKU != "" {
			doc.SKUs = append(doc.SKUs, v.SKU)
		}
	}
	return doc
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// Reindex drops the index of kind and bulk-indexes its active items.
// It returns the number of documents written.
func (ix *Indexer) Reindex(ctx context.Context, kind string, items []catalog.Item) (int, error) {
	log := logger.WithContext(ctx).WithField("kind", kind)
	if ix.client == nil {
		log.Warn("elasticsearch not configured, skipping reindex")
		return 0, nil
	}
	index := ix.IndexName(kind)

	del, err := ix.client.Indices.Delete([]string{index},
		ix.client.Indices.Delete.WithContext(ctx),
		ix.client.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return 0, fmt.Errorf("delete index %s: %w", index, err)
	}
	if del.IsError() && del.StatusCode != 404 {
		defer del.Body.Close()
		return 0, fmt.Errorf("delete index %s: %s", index, del.String())
	}
	del.Body.Close()

	var buf bytes.Buffer
	n := 0
	for _, it := range items {
		if !it.IsActive {
			continue
		}
		meta := map[string]map[string]string{"index": {"_index": index, "_id": it.ID}}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return 0, err
		}
		if err := json.NewEncoder(&buf).Encode(toDocument(it)); err != nil {
			return 0, err
		}
		n++
	}
	if n == 0 {
		return 0, nil
	}

	res, err := ix.client.Bulk(bytes.NewReader(buf.Bytes()),
		ix.client.Bulk.WithContext(ctx),
		ix.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("bulk %s: %s", index, res.String())
	}
	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return 0, fmt.Errorf("bulk %s: decode: %w", index, err)
	}
	failed := 0
	if br.Errors {
		for _, item := range br.Items {
			for _, r := range item {
				if r.Error != nil {
					failed++
					log.WithFields(logrus.Fields{"type": r.Error.Type, "reason": r.Error.Reason}).Warn("bulk item failed")
				}
			}
		}
	}
	log.WithFields(logrus.Fields{"index": index, "indexed": n - failed, "failed": failed}).Info("catalog reindexed")
	if failed > 0 {
		return n - failed, fmt.Errorf("bulk %s: %d of %d documents failed", index, failed, n)
	}
	return n, nil
}

// Search runs a multi_match query against the index of kind and returns
// matching item ids in score order.
func (ix *Indexer) Search(ctx context.Context, kind, query string, size int) ([]string, int, error) {
	if ix.client == nil {
		return nil, 0, fmt.Errorf("elasticsearch not configured")
	}
	if size <= 0 {
		size = 20
	}
	body := map[string]interface{}{
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "skus^2", "text.*"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := ix.client.Search(
		ix.client.Search.WithContext(ctx),
		ix.client.Search.WithIndex(ix.IndexName(kind)),
		ix.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, esResp.Hits.Total.Value, nil
}
