// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

type Repository interface {
	LogNavigation(ctx context.Context, log NavigationLog) error
	QueryLogs(ctx context.Context, from, to time.Time, sessionID, facility string) ([]NavigationLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a repository writing to index at esURL.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewElasticsearchRepositoryWithClient(esClient, index), nil
}

func NewElasticsearchRepositoryWithClient(esClient *elasticsearch.Client, index string) *ElasticsearchRepository {
	return &ElasticsearchRepository{esClient: esClient, index: index}
}

// LogNavigation indexes one navigation decision.
func (r *ElasticsearchRepository) LogNavigation(ctx context.Context, log NavigationLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: log.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source NavigationLog `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// QueryLogs searches navigation logs within a time frame, optionally filtered
// by session and facility.
func (r *ElasticsearchRepository) QueryLogs(ctx context.Context, from, to time.Time, sessionID, facility string) ([]NavigationLog, error) {
	must := []map[string]interface{}{
		{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": from.Format(time.RFC3339),
					"lte": to.Format(time.RFC3339),
				},
			},
		},
	}
	if sessionID != "" {
		must = append(must, map[string]interface{}{"match": map[string]interface{}{"session_id": sessionID}})
	}
	if facility != "" {
		must = append(must, map[string]interface{}{"match": map[string]interface{}{"facility": facility}})
	}
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"sort": []interface{}{
			map[string]interface{}{"timestamp": map[string]interface{}{"order": "desc"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []NavigationLog{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	logs := make([]NavigationLog, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		logs = append(logs, hit.Source)
	}
	return logs, nil
}
