package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds Pinecone client configuration. Host is the index data
// plane host returned by describe_index, without scheme.
type Config struct {
	APIKey     string        `env:"PINECONE_API_KEY"`
	Host       string        `env:"PINECONE_INDEX_HOST"`
	APIVersion string        `env:"PINECONE_API_VERSION" envDefault:"2025-01"`
	Timeout    time.Duration `env:"PINECONE_TIMEOUT" envDefault:"30s"`
}

// Client calls the Pinecone index data plane.
type Client struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	apiVersion string
}

// NewClient returns new Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing Pinecone API key")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("missing Pinecone index host")
	}

	baseURL := cfg.Host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	return &Client{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
	}, nil
}

// Vector is one embedded chunk with its metadata.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Match is one similarity query result.
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors   []Vector `json:"vectors"`
	Namespace string   `json:"namespace,omitempty"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

// Upsert writes vectors into namespace and returns the upserted count.
func (c *Client) Upsert(ctx context.Context, namespace string, vectors []Vector) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}

	var resp upsertResponse
	err := c.doJSON(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: namespace,
	}, &resp)
	if err != nil {
		return 0, err
	}

	return resp.UpsertedCount, nil
}

type queryRequest struct {
	Namespace       string    `json:"namespace,omitempty"`
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []Match `json:"matches"`
}

// Query returns up to topK most similar vectors in namespace.
func (c *Client) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector required")
	}

	var resp queryResponse
	err := c.doJSON(ctx, "/query", queryRequest{
		Namespace:       namespace,
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Matches, nil
}

type deleteRequest struct {
	DeleteAll bool   `json:"deleteAll"`
	Namespace string `json:"namespace,omitempty"`
}

// DeleteAll removes every vector in namespace.
func (c *Client) DeleteAll(ctx context.Context, namespace string) error {
	return c.doJSON(ctx, "/vectors/delete", deleteRequest{
		DeleteAll: true,
		Namespace: namespace,
	}, &struct{}{})
}

func (c *Client) doJSON(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("can't encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("can't build request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Pinecone-Api-Version", c.apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("can't get response: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("can't read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pinecone http %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("can't decode response: %w", err)
	}

	return nil
}
