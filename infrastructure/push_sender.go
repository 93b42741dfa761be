package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"partyboard/domain/entities"

	"github.com/goccy/go-json"
)

// Push provider error codes that mean the address is permanently dead and
// should be retired rather than retried.
var permanentPushErrors = map[string]bool{
	"UNREGISTERED":    true,
	"INVALID_ADDRESS": true,
	"SENDER_MISMATCH": true,
}

// HTTPPushSender implements the PushSender interface against the push
// delivery service's batch endpoint.
type HTTPPushSender struct {
	baseURL      string
	apiKey       string
	maxBatchSize int
	client       *http.Client
}

// NewHTTPPushSender creates a new push delivery client
func NewHTTPPushSender(baseURL, apiKey string, maxBatchSize int) *HTTPPushSender {
	if maxBatchSize <= 0 {
		maxBatchSize = 500
	}
	return &HTTPPushSender{
		baseURL:      baseURL,
		apiKey:       apiKey,
		maxBatchSize: maxBatchSize,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// MaxBatchSize returns the largest batch the provider accepts
func (s *HTTPPushSender) MaxBatchSize() int {
	return s.maxBatchSize
}

type pushBatchRequest struct {
	Messages []entities.PushMessage `json:"messages"`
}

type pushBatchResponse struct {
	Results []struct {
		Address   string `json:"address"`
		Delivered bool   `json:"delivered"`
		ErrorCode string `json:"error_code,omitempty"`
	} `json:"results"`
}

// SendBatch delivers a batch of messages and returns one result per message,
// in order, classifying permanent address failures.
func (s *HTTPPushSender) SendBatch(ctx context.Context, messages []entities.PushMessage) ([]entities.PushResult, error) {
	payload, err := json.Marshal(pushBatchRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("failed to encode push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read push response: %w", err)
	}

	var decoded pushBatchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode push response: %w", err)
	}
	if len(decoded.Results) != len(messages) {
		return nil, fmt.Errorf("push service returned %d results for %d messages", len(decoded.Results), len(messages))
	}

	results := make([]entities.PushResult, len(decoded.Results))
	for i, r := range decoded.Results {
		results[i] = entities.PushResult{
			Address:          r.Address,
			Delivered:        r.Delivered,
			PermanentFailure: permanentPushErrors[r.ErrorCode],
			Error:            r.ErrorCode,
		}
	}
	return results, nil
}
