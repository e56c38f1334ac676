package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when the provider has no place for the given id.
var ErrNotFound = errors.New("place not found")

// Client is the fetch-by-id capability against the external places provider.
type Client interface {
	FetchDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

const detailsFieldMask = "id,displayName,location,formattedAddress,priceLevel," +
	"rating,userRatingCount,delivery,takeout,dineIn,outdoorSeating,reservable," +
	"servesBreakfast,servesLunch,servesDinner,allowsDogs,goodForChildren," +
	"paymentOptions,editorialSummary,generativeSummary,reviews"

// HTTPClient calls the provider's place-details endpoint.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewHTTPClient creates a details client. baseURL has no trailing slash,
// e.g. "https://places.googleapis.com/v1".
func NewHTTPClient(baseURL, apiKey string, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		log: log,
	}
}

// FetchDetails fetches the detail document for a place id
func (c *HTTPClient) FetchDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	reqURL := fmt.Sprintf("%s/places/%s", c.baseURL, placeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("place_id", placeID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("provider fetch")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var doc PlaceDetails
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &doc, nil
}
