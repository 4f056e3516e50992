// Package openai generates text embeddings through the OpenAI embeddings API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*EmbeddingService)(nil)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second

	// BatchLimit is the maximum number of inputs per embeddings request.
	// Larger batches are paged internally.
	BatchLimit = 100
)

// Known output sizes per model. Unknown models fall back to 1536.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Config holds connection settings for the embeddings API.
type Config struct {
	// APIKey authenticates requests (required).
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for Azure OpenAI or a
	// compatible proxy. Defaults to the public OpenAI endpoint.
	BaseURL string

	// Model selects the embedding model (default: text-embedding-3-small).
	Model string

	// Timeout bounds each request (default: 60s).
	Timeout time.Duration

	// Dimensions requests a reduced output size. Only honoured by the
	// text-embedding-3-* family.
	Dimensions int
}

// EmbeddingService turns chunk text into vectors via the OpenAI API.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingData struct {
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewEmbeddingService validates cfg and returns a ready client.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	dims := cfg.Dimensions
	if dims == 0 {
		if known, ok := modelDimensions[cfg.Model]; ok {
			dims = known
		} else {
			dims = 1536
		}
	}

	return &EmbeddingService{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: dims,
	}, nil
}

// Embed generates a vector for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("openai: no embedding returned")
	}
	return vectors[0], nil
}

// EmbedBatch generates one vector per input text, preserving input order.
// Batches larger than BatchLimit are split across requests and the results
// concatenated.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += BatchLimit {
		end := min(start+BatchLimit, len(texts))
		page, err := s.embedPage(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, page...)
	}
	return vectors, nil
}

func (s *EmbeddingService) embedPage(ctx context.Context, texts []string) ([][]float32, error) {
	payload := embeddingRequest{Model: s.model, Input: texts}
	if s.dimensions > 0 && strings.HasPrefix(s.model, "text-embedding-3-") {
		payload.Dimensions = s.dimensions
	}

	var result embeddingResponse
	if err := s.post(ctx, "/embeddings", payload, &result); err != nil {
		return nil, err
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("openai: got %d embeddings for %d inputs", len(result.Data), len(texts))
	}

	// The API may return items out of order; place each by its index and
	// narrow to float32 as the index stores.
	vectors := make([][]float32, len(texts))
	for _, item := range result.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", item.Index)
		}
		v := make([]float32, len(item.Embedding))
		for i, c := range item.Embedding {
			v[i] = float32(c)
		}
		vectors[item.Index] = v
	}
	return vectors, nil
}

func (s *EmbeddingService) post(ctx context.Context, path string, payload any, result *embeddingResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if result.Error != nil {
		return fmt.Errorf("openai error: %s", result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the embedding model in use.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping checks reachability and key validity against /models without
// running inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// Close releases resources. The underlying HTTP client needs no cleanup.
func (s *EmbeddingService) Close() error {
	return nil
}
