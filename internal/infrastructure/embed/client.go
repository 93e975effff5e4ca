package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"NewsRadar/internal/rank"
)

// DefaultReference is the finance-domain phrase every item is compared
// against. Mirrors the production reference text.
const DefaultReference = "earnings revenue guidance profit loss merger acquisition regulation lawsuit " +
	"analyst rating upgrade downgrade CEO CFO quarterly results forecast dividend buyback IPO"

const maxEmbedTextLen = 500

// Client talks to an external embedding service and exposes cosine
// similarity against the cached finance-reference vector. Implements
// rank.SimilaritySource; the pipeline functions without it, with a
// documented scoring degradation.
type Client struct {
	endpoint  string
	apiKey    string
	reference string
	http      *http.Client

	mu     sync.Mutex
	refVec []float64
}

var _ rank.SimilaritySource = (*Client)(nil)

// NewClient builds a reusable embedding client; an empty reference selects
// the default finance phrase.
func NewClient(endpoint, apiKey, reference string) *Client {
	if reference == "" {
		reference = DefaultReference
	}
	return &Client{
		endpoint:  endpoint,
		apiKey:    apiKey,
		reference: reference,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Similarity embeds the text (truncated to a bounded prefix) and returns its
// cosine similarity to the reference vector.
func (c *Client) Similarity(ctx context.Context, text string) (float64, error) {
	ref, err := c.referenceVector(ctx)
	if err != nil {
		return 0, fmt.Errorf("reference embedding: %w", err)
	}

	vec, err := c.Embed(ctx, truncate(text, maxEmbedTextLen))
	if err != nil {
		return 0, fmt.Errorf("embed text: %w", err)
	}

	return cosine(ref, vec)
}

// Embed returns the fixed-length vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}
	return payload.Embedding, nil
}

func (c *Client) referenceVector(ctx context.Context) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refVec != nil {
		return c.refVec, nil
	}
	vec, err := c.Embed(ctx, c.reference)
	if err != nil {
		return nil, err
	}
	c.refVec = vec
	return vec, nil
}

func cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
