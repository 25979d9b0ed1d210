package config

import (
	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticIndex is the product index queried by the elastic catalog backend.
func ElasticIndex() string {
	return GetEnv("ELASTICSEARCH_INDEX", "chatshop_products")
}

func NewElasticClient() (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{GetEnv("ELASTICSEARCH_HOST", "http://localhost:9200")},
		Username:  GetEnv("ELASTICSEARCH_USER", ""),
		Password:  GetEnv("ELASTICSEARCH_PASS", ""),
	}
	return elasticsearch.NewClient(cfg)
}
