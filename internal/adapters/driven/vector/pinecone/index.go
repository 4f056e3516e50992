// Package pinecone provides a vector index adapter for a Pinecone-style
// REST API. Entries live in namespaces within a single index; every
// operation accepts a per-call namespace override.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultNamespace = "wiki-knowledge"
	DefaultTimeout   = 30 * time.Second
)

// Config holds configuration for the vector index adapter.
type Config struct {
	// APIKey authenticates requests (required).
	APIKey string

	// Host is the index endpoint, e.g. https://my-index-abc123.svc.pinecone.io (required).
	Host string

	// Namespace is the default namespace (default: wiki-knowledge).
	Namespace string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Index talks to a Pinecone-style vector index over REST.
type Index struct {
	client    *http.Client
	host      string
	apiKey    string
	namespace string
}

// New creates a new vector index adapter.
func New(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Index{
		client:    &http.Client{Timeout: cfg.Timeout},
		host:      trimTrailingSlash(cfg.Host),
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
	}, nil
}

// Wire formats.

type wireVector struct {
	ID       string               `json:"id"`
	Values   []float32            `json:"values,omitempty"`
	Metadata driven.EntryMetadata `json:"metadata"`
}

type upsertRequest struct {
	Vectors   []wireVector `json:"vectors"`
	Namespace string       `json:"namespace,omitempty"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace,omitempty"`
	IncludeMetadata bool      `json:"includeMetadata"`
	IncludeValues   bool      `json:"includeValues"`
}

type queryResponse struct {
	Matches []struct {
		ID       string               `json:"id"`
		Score    float64              `json:"score"`
		Metadata driven.EntryMetadata `json:"metadata"`
	} `json:"matches"`
}

type deleteRequest struct {
	IDs       []string `json:"ids,omitempty"`
	DeleteAll bool     `json:"deleteAll,omitempty"`
	Namespace string   `json:"namespace,omitempty"`
}

type fetchResponse struct {
	Vectors map[string]wireVector `json:"vectors"`
}

type updateRequest struct {
	ID          string               `json:"id"`
	SetMetadata driven.EntryMetadata `json:"setMetadata"`
	Namespace   string               `json:"namespace,omitempty"`
}

type statsResponse struct {
	Dimension        int `json:"dimension"`
	TotalVectorCount int `json:"totalVectorCount"`
	Namespaces       map[string]struct {
		VectorCount int `json:"vectorCount"`
	} `json:"namespaces"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Upsert writes or replaces entries. Empty input is a no-op returning a
// zero count; upserts with an existing id replace the prior entry.
func (x *Index) Upsert(ctx context.Context, entries []driven.IndexEntry, namespace string) (driven.UpsertResult, error) {
	if len(entries) == 0 {
		return driven.UpsertResult{Count: 0}, nil
	}

	vectors := make([]wireVector, len(entries))
	for i, e := range entries {
		vectors[i] = wireVector{ID: e.ID, Values: e.Vector, Metadata: e.Metadata}
	}

	var resp upsertResponse
	err := x.post(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: x.resolveNamespace(namespace),
	}, &resp)
	if err != nil {
		return driven.UpsertResult{}, fmt.Errorf("upsert: %w", err)
	}

	return driven.UpsertResult{Count: resp.UpsertedCount}, nil
}

// Query returns up to topK matches sorted by descending similarity. When
// scoreThreshold is set, matches below it are filtered out after the call.
func (x *Index) Query(
	ctx context.Context, vector []float32, topK int, scoreThreshold *float64, namespace string,
) ([]driven.VectorMatch, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query: %w: empty vector", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = 5
	}

	var resp queryResponse
	err := x.post(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		Namespace:       x.resolveNamespace(namespace),
		IncludeMetadata: true,
		IncludeValues:   false,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	matches := make([]driven.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if scoreThreshold != nil && m.Score < *scoreThreshold {
			continue
		}
		matches = append(matches, driven.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Metadata,
		})
	}

	return matches, nil
}

// Delete removes entries by id, or everything in the namespace when
// deleteAll is set. Exactly one of the two modes must be chosen.
func (x *Index) Delete(ctx context.Context, ids []string, deleteAll bool, namespace string) error {
	if deleteAll == (len(ids) > 0) {
		return fmt.Errorf("delete: %w: provide ids or deleteAll, not both or neither", domain.ErrInvalidInput)
	}

	err := x.post(ctx, "/vectors/delete", deleteRequest{
		IDs:       ids,
		DeleteAll: deleteAll,
		Namespace: x.resolveNamespace(namespace),
	}, nil)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Fetch returns the entries for the given ids. Missing ids are absent
// from the result map, not an error.
func (x *Index) Fetch(ctx context.Context, ids []string, namespace string) (map[string]driven.IndexEntry, error) {
	if len(ids) == 0 {
		return map[string]driven.IndexEntry{}, nil
	}

	params := url.Values{}
	for _, id := range ids {
		params.Add("ids", id)
	}
	params.Set("namespace", x.resolveNamespace(namespace))

	var resp fetchResponse
	if err := x.get(ctx, "/vectors/fetch?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	entries := make(map[string]driven.IndexEntry, len(resp.Vectors))
	for id, v := range resp.Vectors {
		entries[id] = driven.IndexEntry{ID: v.ID, Vector: v.Values, Metadata: v.Metadata}
	}
	return entries, nil
}

// UpdateMetadata replaces the metadata of an existing entry.
func (x *Index) UpdateMetadata(ctx context.Context, id string, metadata driven.EntryMetadata, namespace string) error {
	if id == "" {
		return fmt.Errorf("update metadata: %w: id is required", domain.ErrInvalidInput)
	}

	err := x.post(ctx, "/vectors/update", updateRequest{
		ID:          id,
		SetMetadata: metadata,
		Namespace:   x.resolveNamespace(namespace),
	}, nil)
	if err != nil {
		return fmt.Errorf("update metadata: %w", err)
	}
	return nil
}

// Stats returns an index-level summary.
func (x *Index) Stats(ctx context.Context) (driven.IndexStats, error) {
	var resp statsResponse
	if err := x.post(ctx, "/describe_index_stats", struct{}{}, &resp); err != nil {
		return driven.IndexStats{}, fmt.Errorf("stats: %w", err)
	}

	namespaces := make(map[string]int, len(resp.Namespaces))
	for name, ns := range resp.Namespaces {
		namespaces[name] = ns.VectorCount
	}

	return driven.IndexStats{
		VectorCount: resp.TotalVectorCount,
		Dimension:   resp.Dimension,
		Namespaces:  namespaces,
	}, nil
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// resolveNamespace applies the default when no override is given.
func (x *Index) resolveNamespace(namespace string) string {
	if namespace != "" {
		return namespace
	}
	return x.namespace
}

// post sends a JSON request and decodes the response into out when non-nil.
func (x *Index) post(ctx context.Context, path string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", x.apiKey)

	return x.do(req, out)
}

// get sends a GET request and decodes the response into out.
func (x *Index) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.host+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Api-Key", x.apiKey)

	return x.do(req, out)
}

func (x *Index) do(req *http.Request, out any) error {
	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, req.URL.Path)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
