// Package vectorstore provides clients for the external vector database
// the engine writes chunks to and queries at search time.
package vectorstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"sermonsearch/config"
	"sermonsearch/internal/port"
)

// Qdrant is a minimal REST client to a Qdrant server. It assumes cosine
// distance and creates collections on demand.
type Qdrant struct {
	url    string
	apiKey string
	client *http.Client
}

// NewQdrant builds the client from configuration. The API key env var
// may be unset for local unauthenticated servers.
func NewQdrant(cfg config.VectorDBConfig) *Qdrant {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Qdrant{
		url:    cfg.URL,
		apiKey: os.Getenv(cfg.APIKeyEnv),
		client: &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection if missing. Qdrant returns 200
// for an existing collection with the same schema.
func (s *Qdrant) EnsureCollection(collection string, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, collection), body)
}

func (s *Qdrant) Upsert(collection string, items []port.VectorItem) error {
	if len(items) == 0 {
		return nil
	}
	points := make([]map[string]any, len(items))
	for i, item := range items {
		payload := map[string]any{"document": item.Document}
		for k, v := range item.Metadata {
			payload[k] = v
		}
		points[i] = map[string]any{
			"id":      item.ID,
			"vector":  item.Vector,
			"payload": payload,
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, collection), body)
}

func (s *Qdrant) Query(collection string, vector []float32, k int) ([]port.VectorResult, error) {
	if k <= 0 {
		k = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      json.RawMessage `json:"id"`
			Score   float64         `json:"score"`
			Payload map[string]any  `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, collection), req, &resp); err != nil {
		return nil, err
	}

	results := make([]port.VectorResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		res := port.VectorResult{
			ID:       string(bytes.Trim(r.ID, `"`)),
			Metadata: make(map[string]string, len(r.Payload)),
			// Qdrant cosine scores are similarities; callers expect a
			// distance.
			Distance: 1 - r.Score,
		}
		for k, v := range r.Payload {
			str, ok := v.(string)
			if !ok {
				continue
			}
			if k == "document" {
				res.Document = str
			} else {
				res.Metadata[k] = str
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Qdrant) Count(collection string) (int, error) {
	var resp struct {
		Result struct {
			PointsCount int `json:"points_count"`
		} `json:"result"`
	}
	if err := s.getJSON(fmt.Sprintf("%s/collections/%s", s.url, collection), &resp); err != nil {
		return 0, err
	}
	return resp.Result.PointsCount, nil
}

func (s *Qdrant) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Qdrant) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *Qdrant) getJSON(url string, out any) error {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant GET %s failed: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
