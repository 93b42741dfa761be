package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"partyboard/domain/entities"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPushSender_SendBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/send", r.URL.Path)
		require.Equal(t, "Bearer push-key", r.Header.Get("Authorization"))

		var req pushBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := pushBatchResponse{}
		for _, m := range req.Messages {
			result := struct {
				Address   string `json:"address"`
				Delivered bool   `json:"delivered"`
				ErrorCode string `json:"error_code,omitempty"`
			}{Address: m.Address, Delivered: true}

			switch m.Address {
			case "dead-token":
				result.Delivered = false
				result.ErrorCode = "UNREGISTERED"
			case "flaky-token":
				result.Delivered = false
				result.ErrorCode = "TIMEOUT"
			}
			resp.Results = append(resp.Results, result)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	sender := NewHTTPPushSender(server.URL, "push-key", 500)
	ctx := context.Background()

	t.Run("delivered and failed results map in order", func(t *testing.T) {
		results, err := sender.SendBatch(ctx, []entities.PushMessage{
			{Address: "good-token", Title: "t", Body: "b"},
			{Address: "dead-token", Title: "t", Body: "b"},
			{Address: "flaky-token", Title: "t", Body: "b"},
		})
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.True(t, results[0].Delivered)

		assert.False(t, results[1].Delivered)
		assert.True(t, results[1].PermanentFailure)
		assert.Equal(t, "UNREGISTERED", results[1].Error)

		// Transient provider errors are failures but not permanent ones
		assert.False(t, results[2].Delivered)
		assert.False(t, results[2].PermanentFailure)
	})

	t.Run("unreachable host returns error", func(t *testing.T) {
		down := NewHTTPPushSender("http://127.0.0.1:1", "push-key", 500)
		_, err := down.SendBatch(ctx, []entities.PushMessage{{Address: "a"}})
		assert.Error(t, err)
	})
}

func TestHTTPPushSender_SendBatch_ResultCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	sender := NewHTTPPushSender(server.URL, "push-key", 500)
	_, err := sender.SendBatch(context.Background(), []entities.PushMessage{{Address: "a"}})
	assert.Error(t, err)
}

func TestHTTPPushSender_MaxBatchSize(t *testing.T) {
	assert.Equal(t, 200, NewHTTPPushSender("http://push", "k", 200).MaxBatchSize())
	// Non-positive sizes fall back to the provider default
	assert.Equal(t, 500, NewHTTPPushSender("http://push", "k", 0).MaxBatchSize())
}
