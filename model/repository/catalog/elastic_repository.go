package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/pkg/errors"

	entity "chatshop.GO/model/entity/catalog"
)

// DefaultElasticSize is the page size used when walking hits with search_after.
const DefaultElasticSize = 1000

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

type ElasticRepository struct {
	client *elasticsearch.Client
	index  string
	size   int
}

func NewElasticRepository(client *elasticsearch.Client, index string) *ElasticRepository {
	return &ElasticRepository{client: client, index: index, size: DefaultElasticSize}
}

type searchHit struct {
	ID     string            `json:"_id"`
	Source entity.Product    `json:"_source"`
	Sort   []json.RawMessage `json:"sort"`
}

// Find runs a filter-only bool query. Variants are a nested field.
// All matching hits are returned, fetched page by page with search_after.
func (r *ElasticRepository) Find(ctx context.Context, q Query) ([]entity.Product, error) {
	if r.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	products := []entity.Product{}
	var after []json.RawMessage
	for {
		hits, err := r.searchPage(ctx, q, after)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			p := hit.Source
			if p.ID == "" {
				p.ID = hit.ID
			}
			p.CategoryID = p.Category.ID
			products = append(products, p)
		}
		if len(hits) < r.size {
			return products, nil
		}
		after = hits[len(hits)-1].Sort
		if len(after) == 0 {
			return nil, fmt.Errorf("elasticsearch hit %s has no sort values", hits[len(hits)-1].ID)
		}
	}
}

func (r *ElasticRepository) searchPage(ctx context.Context, q Query, after []json.RawMessage) ([]searchHit, error) {
	body, err := json.Marshal(r.searchBody(q, after))
	if err != nil {
		return nil, err
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "elasticsearch search")
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []searchHit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, errors.Wrap(err, "decode elasticsearch response")
	}
	return esResp.Hits.Hits, nil
}

// FindByID fetches one document by id.
func (r *ElasticRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if r.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	res, err := r.client.Get(r.index, id, r.client.Get.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "elasticsearch get")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var doc struct {
		ID     string         `json:"_id"`
		Found  bool           `json:"found"`
		Source entity.Product `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode elasticsearch document")
	}
	if !doc.Found {
		return nil, ErrProductNotFound
	}
	p := doc.Source
	if p.ID == "" {
		p.ID = doc.ID
	}
	p.CategoryID = p.Category.ID
	return &p, nil
}

// searchBody sorts like the SQL backend: creation time, then id as tiebreaker.
func (r *ElasticRepository) searchBody(q Query, after []json.RawMessage) map[string]interface{} {
	filters := []map[string]interface{}{}
	if q.ActiveOnly {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"is_active": true},
		})
	}
	if q.SlugContains != "" {
		filters = append(filters, wildcard("slug", q.SlugContains))
	}
	if q.Color != "" {
		filters = append(filters, nestedVariant(wildcard("variants.color", q.Color)))
	}
	if q.Size != "" {
		filters = append(filters, nestedVariant(wildcard("variants.size", q.Size)))
	}
	if q.CategoryID != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category.id": q.CategoryID},
		})
	}
	body := map[string]interface{}{
		"size": r.size,
		"sort": []interface{}{
			map[string]interface{}{"created_at": map[string]interface{}{"order": "asc", "missing": "_first"}},
			map[string]interface{}{"id": "asc"},
		},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
	}
	if len(after) > 0 {
		body["search_after"] = after
	}
	return body
}

// Upsert indexes products; documents with the same id are overwritten.
func (r *ElasticRepository) Upsert(ctx context.Context, products []entity.Product) error {
	return r.Index(ctx, products)
}

// Index writes products as documents keyed by product ID and refreshes the index.
func (r *ElasticRepository) Index(ctx context.Context, products []entity.Product) error {
	if r.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	for i := range products {
		p := products[i]
		if p.CategoryID != "" && p.Category.ID == "" {
			p.Category.ID = p.CategoryID
		}
		doc, err := json.Marshal(p)
		if err != nil {
			return err
		}
		res, err := r.client.Index(
			r.index,
			bytes.NewReader(doc),
			r.client.Index.WithContext(ctx),
			r.client.Index.WithDocumentID(p.ID),
			r.client.Index.WithRefresh("true"),
		)
		if err != nil {
			return errors.Wrapf(err, "index product %s", p.ID)
		}
		if res.IsError() {
			msg, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return fmt.Errorf("index product %s status %s: %s", p.ID, res.Status(), strings.TrimSpace(string(msg)))
		}
		res.Body.Close()
	}
	return nil
}

// EnsureIndex creates the product index with a nested variants mapping when missing.
func (r *ElasticRepository) EnsureIndex(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	existsRes, err := r.client.Indices.Exists(
		[]string{r.index},
		r.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return errors.Wrap(err, "check index existence")
	}
	existsRes.Body.Close()
	if existsRes.StatusCode != http.StatusNotFound {
		return nil
	}

	body, err := json.Marshal(productIndexDefinition())
	if err != nil {
		return err
	}
	createRes, err := r.client.Indices.Create(
		r.index,
		r.client.Indices.Create.WithContext(ctx),
		r.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return errors.Wrap(err, "create index")
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		resp, _ := io.ReadAll(createRes.Body)
		return fmt.Errorf("create index status %s: %s", createRes.Status(), strings.TrimSpace(string(resp)))
	}
	return nil
}

func productIndexDefinition() map[string]interface{} {
	keyword := map[string]interface{}{"type": "keyword"}
	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":        keyword,
				"name":      map[string]interface{}{"type": "text"},
				"slug":      keyword,
				"images":    keyword,
				"is_active": map[string]interface{}{"type": "boolean"},
				"created_at": map[string]interface{}{"type": "date"},
				"category": map[string]interface{}{
					"properties": map[string]interface{}{
						"id":   keyword,
						"name": map[string]interface{}{"type": "text"},
					},
				},
				"variants": map[string]interface{}{
					"type": "nested",
					"properties": map[string]interface{}{
						"color":           keyword,
						"size":            keyword,
						"price":           map[string]interface{}{"type": "long"},
						"discountPercent": map[string]interface{}{"type": "float"},
					},
				},
			},
		},
	}
}

func wildcard(field, literal string) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			field: map[string]interface{}{
				"value":            "*" + wildcardEscaper.Replace(literal) + "*",
				"case_insensitive": true,
			},
		},
	}
}

func nestedVariant(query map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"nested": map[string]interface{}{
			"path":  "variants",
			"query": query,
		},
	}
}
