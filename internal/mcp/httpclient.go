package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/intervals/internal/models"
)

// HTTPClient implements Evaluator by calling the intervals REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// server is reached over the network (e.g. a tailnet).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Evaluator.
var _ Evaluator = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// may be empty when the server does not require one.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// post sends v as JSON and returns the status and body. Statuses other than
// 200, 413 and 422 are turned into errors.
func (c *HTTPClient) post(ctx context.Context, path string, v any) (int, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return resp.StatusCode, body, nil
	}
	return 0, nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
}

func (c *HTTPClient) Evaluate(ctx context.Context, input string) (*models.Evaluation, error) {
	status, body, err := c.post(ctx, "/api/v1/evaluate", models.EvaluateRequest{Input: input})
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		var failure models.EvaluationError
		if err := json.Unmarshal(body, &failure); err != nil {
			return nil, fmt.Errorf("httpclient: decode failure: %w", err)
		}
		return &models.Evaluation{Input: input, Failure: &failure}, nil
	}

	var ev models.Evaluation
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("httpclient: decode evaluation: %w", err)
	}
	return &ev, nil
}

func (c *HTTPClient) EvaluateBatch(ctx context.Context, inputs []string, stopOnError bool) (*models.BatchResponse, error) {
	status, body, err := c.post(ctx, "/api/v1/evaluate/batch", models.BatchRequest{Inputs: inputs, StopOnError: stopOnError})
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		var failure models.EvaluationError
		if err := json.Unmarshal(body, &failure); err != nil {
			return nil, fmt.Errorf("httpclient: decode failure: %w", err)
		}
		return nil, fmt.Errorf("httpclient: batch rejected: %w", &failure)
	}

	var resp models.BatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode batch: %w", err)
	}
	return &resp, nil
}
