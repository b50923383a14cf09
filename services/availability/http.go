package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freshnest/models"
	"freshnest/utils"

	"go.uber.org/zap"
)

// Config carries the gateway's connection settings. Passing these in explicitly
// keeps API keys out of ambient process-wide lookups.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPGateway implements Gateway against the calendar provider's REST API.
type HTTPGateway struct {
	cfg    Config
	client *http.Client
	cache  *windowCache // nil disables caching
}

// NewHTTPGateway builds a gateway. cache may be nil.
func NewHTTPGateway(cfg Config, cache *windowCache) *HTTPGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &HTTPGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  cache,
	}
}

// busyResponse is the wire shape of the provider's free/busy endpoint.
type busyResponse struct {
	Busy []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"busy"`
}

// BusyWindows fetches busy intervals for a resource. Responses are cached for a
// short TTL keyed on the exact query, so repeated identical lookups within one
// booking session don't hammer the provider.
func (g *HTTPGateway) BusyWindows(ctx context.Context, resourceID string, from, to time.Time) ([]models.AvailabilityWindow, error) {
	if g.cache != nil {
		if windows, ok := g.cache.get(ctx, resourceID, from, to); ok {
			return windows, nil
		}
	}

	url := fmt.Sprintf("%s/v1/resources/%s/busy?from=%s&to=%s",
		g.cfg.BaseURL, resourceID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Upstream bodies are logged, never surfaced to customers.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		utils.GetLogger().Warn("calendar busy query failed",
			zap.String("resourceId", resourceID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, &UnavailableError{ResourceID: resourceID, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed busyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: fmt.Errorf("malformed response: %w", err)}
	}

	windows := make([]models.AvailabilityWindow, 0, len(parsed.Busy))
	for _, b := range parsed.Busy {
		windows = append(windows, models.AvailabilityWindow{
			ResourceID: resourceID,
			Start:      b.Start,
			End:        b.End,
			Busy:       true,
		})
	}

	if g.cache != nil {
		g.cache.put(ctx, resourceID, from, to, windows)
	}
	return windows, nil
}

// createRequest is the wire shape of the provider's create-booking call.
type createRequest struct {
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	Attendee models.Attendee   `json:"attendee"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateBooking registers a booking on the calendar. A 409 from the provider
// means another party took the window first.
func (g *HTTPGateway) CreateBooking(ctx context.Context, resourceID string, window models.TimeWindowUTC, attendee models.Attendee, metadata map[string]string) (*models.BookingConfirmation, error) {
	payload, err := json.Marshal(createRequest{
		Start:    window.Start.UTC(),
		End:      window.End.UTC(),
		Attendee: attendee,
		Metadata: metadata,
	})
	if err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: err}
	}

	url := fmt.Sprintf("%s/v1/resources/%s/bookings", g.cfg.BaseURL, resourceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, &ConflictError{ResourceID: resourceID}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		utils.GetLogger().Warn("calendar create booking failed",
			zap.String("resourceId", resourceID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, &UnavailableError{ResourceID: resourceID, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var conf models.BookingConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return nil, &UnavailableError{ResourceID: resourceID, Err: fmt.Errorf("malformed response: %w", err)}
	}

	// Best effort: drop the cached query matching this exact window. Other
	// cached queries age out within the TTL.
	if g.cache != nil {
		g.cache.invalidate(ctx, resourceID, window.Start, window.End)
	}
	return &conf, nil
}
