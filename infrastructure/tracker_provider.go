package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"partyboard/domain/entities"

	"github.com/goccy/go-json"
)

// TrackerProvider implements the StatsProvider interface against the
// third-party stats tracker HTTP API. Rate limiting is the upstream's; the
// stats cache keeps calls to at most one per TTL window per user.
type TrackerProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewTrackerProvider creates a new tracker API client
func NewTrackerProvider(baseURL, apiKey string) *TrackerProvider {
	return &TrackerProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// trackerStatsResponse is the tracker API's stats payload
type trackerStatsResponse struct {
	Tier     string `json:"tier"`
	Division string `json:"division"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// Fetch retrieves current stats for a linked account
func (p *TrackerProvider) Fetch(ctx context.Context, accountRef string, game entities.Game) (entities.RawStats, error) {
	endpoint := fmt.Sprintf("%s/v1/stats/%s/%s", p.baseURL, url.PathEscape(string(game)), url.PathEscape(accountRef))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.RawStats{}, fmt.Errorf("failed to build tracker request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return entities.RawStats{}, fmt.Errorf("tracker request failed: %w", entities.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return entities.RawStats{}, fmt.Errorf("account %s for game %s: %w", accountRef, game, entities.ErrAccountNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return entities.RawStats{}, fmt.Errorf("tracker returned status %d: %w", resp.StatusCode, entities.ErrProviderUnavailable)
	default:
		return entities.RawStats{}, fmt.Errorf("tracker returned unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.RawStats{}, fmt.Errorf("failed to read tracker response: %w", entities.ErrProviderUnavailable)
	}

	var payload trackerStatsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return entities.RawStats{}, fmt.Errorf("failed to decode tracker response: %w", err)
	}

	return entities.RawStats{
		Tier:     payload.Tier,
		Division: payload.Division,
		Points:   payload.Points,
		Wins:     payload.Wins,
		Losses:   payload.Losses,
	}, nil
}
