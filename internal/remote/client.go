package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"tripboard/internal/model"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: API error: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: API error: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client talks to the hosted itinerary API. The trip id is sent as the
// owner id.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. An empty token sends no
// Authorization header.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// GetItinerary fetches the persisted rows of a trip.
func (c *Client) GetItinerary(ctx context.Context, tripID string) ([]model.ItineraryItem, error) {
	var items []model.ItineraryItem
	if err := c.get(ctx, "/api/itinerary", tripID, &items); err != nil {
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return items, nil
}

// UpdateItinerary replaces the persisted rows of a trip.
func (c *Client) UpdateItinerary(ctx context.Context, tripID string, items []model.ItineraryItem) error {
	if items == nil {
		items = []model.ItineraryItem{}
	}
	body := updateRequest{OwnerID: tripID, Items: items}
	if err := c.post(ctx, "/api/itinerary/update", body); err != nil {
		return fmt.Errorf("failed to update itinerary: %w", err)
	}
	return nil
}

// GetLocations fetches the catalog of a trip.
func (c *Client) GetLocations(ctx context.Context, tripID string) ([]model.Location, error) {
	var resp locationsResponse
	if err := c.get(ctx, "/api/locations", tripID, &resp); err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}
	return resp.Locations, nil
}

func (c *Client) get(ctx context.Context, path, ownerID string, out interface{}) error {
	params := url.Values{}
	params.Set("ownerId", ownerID)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("JSON encode error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, nil)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: req.Method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	return nil
}

type updateRequest struct {
	OwnerID string                `json:"ownerId"`
	Items   []model.ItineraryItem `json:"items"`
}

type locationsResponse struct {
	Locations []model.Location `json:"locations"`
}
