// Package embedder wraps the external embedding service.
package embedder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ServiceError marks a transport or model failure of the embedding service.
// Callers use it to distinguish embedding failures from index failures.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string { return "embedding service: " + e.Err.Error() }
func (e *ServiceError) Unwrap() error { return e.Err }

// OllamaEmbedder calls the Ollama /api/embeddings endpoint, one text per
// request. Ingestion deliberately embeds chunk by chunk so a failure is
// attributable to a single chunk.
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEmbedder creates an embedder targeting the given Ollama instance.
func NewOllamaEmbedder(baseURL, model string) *OllamaEmbedder {
	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Model returns the configured model name.
func (e *OllamaEmbedder) Model() string { return e.model }

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns the embedding vector for a single text.
func (e *OllamaEmbedder) Embed(text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	resp, err := e.client.Post(e.baseURL+"/api/embeddings", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("ollama embeddings request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &ServiceError{Err: fmt.Errorf("ollama embeddings returned %d: %s", resp.StatusCode, string(respBody))}
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("decode embeddings response: %w", err)}
	}
	if len(result.Embedding) == 0 {
		return nil, &ServiceError{Err: fmt.Errorf("ollama returned an empty embedding")}
	}
	return result.Embedding, nil
}
