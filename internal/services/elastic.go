package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"flashfit_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const productIndexName = "products"

// SearchParams are the catalog search filters exposed on the search
// endpoint. The brand id is added separately — search is always scoped to
// the calling brand.
type SearchParams struct {
	Query    string
	Category string
	Gender   string
	MinPrice *float64
	MaxPrice *float64
}

// ProductIndex mirrors the product catalog into Elasticsearch for text
// search. All indexing is fire-and-forget; the catalog of record stays in
// ScyllaDB.
type ProductIndex struct {
	es *elasticsearch.Client
}

func NewProductIndex(es *elasticsearch.Client) *ProductIndex {
	return &ProductIndex{es: es}
}

// Index upserts one product document. Safe to call from a goroutine.
func (pi *ProductIndex) Index(p models.Product) {
	if pi == nil || pi.es == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndexName,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), pi.es)
	if err != nil {
		log.Println("❌ Elasticsearch index error:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elasticsearch rejected product %s: %s", p.Name, res.String())
	}
}

// Remove deletes a product document after catalog deletion.
func (pi *ProductIndex) Remove(id string) {
	if pi == nil || pi.es == nil {
		return
	}

	req := esapi.DeleteRequest{Index: productIndexName, DocumentID: id}
	res, err := req.Do(context.Background(), pi.es)
	if err != nil {
		log.Println("❌ Elasticsearch delete error:", err)
		return
	}
	res.Body.Close()
}

// Search runs a brand-scoped catalog search. Returns an error when the
// client is unavailable so callers can fall back to a store scan.
func (pi *ProductIndex) Search(brandID string, params SearchParams) ([]models.Product, error) {
	if pi == nil || pi.es == nil {
		return nil, errors.New("elasticsearch client not initialised")
	}

	filters := []map[string]interface{}{
		{"term": map[string]interface{}{"brand.keyword": brandID}},
	}
	if params.Category != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"category.keyword": params.Category}})
	}
	if params.Gender != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"gender.keyword": params.Gender}})
	}
	if params.MinPrice != nil || params.MaxPrice != nil {
		priceRange := map[string]interface{}{}
		if params.MinPrice != nil {
			priceRange["gte"] = *params.MinPrice
		}
		if params.MaxPrice != nil {
			priceRange["lte"] = *params.MaxPrice
		}
		filters = append(filters, map[string]interface{}{"range": map[string]interface{}{"price": priceRange}})
	}

	boolQuery := map[string]interface{}{"filter": filters}
	if params.Query != "" {
		boolQuery["must"] = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  params.Query,
				"fields": []string{"name", "description"},
			},
		}
	}

	var buf bytes.Buffer
	body := map[string]interface{}{"query": map[string]interface{}{"bool": boolQuery}}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{productIndexName},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), pi.es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
