package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"tripboard/internal/model"
)

const yelpAPIBase = "https://api.yelp.com/v3"

// ErrNoAPIKey is returned when the client was created without a key.
var ErrNoAPIKey = errors.New("no Yelp API key configured (set yelp-key or YELP_API_KEY)")

// YelpClient wraps the Yelp Fusion API.
type YelpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewYelpClient creates a new Yelp Fusion API client.
func NewYelpClient(apiKey string) *YelpClient {
	return &YelpClient{
		apiKey:     apiKey,
		baseURL:    yelpAPIBase,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Search finds places matching term near city. Results come back as catalog
// locations keyed by the Yelp business id.
func (c *YelpClient) Search(ctx context.Context, term, city string, limit int) ([]model.Location, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Location{}, nil
	}
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if limit <= 0 || limit > 50 {
		limit = 8
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("limit", fmt.Sprint(limit))
	params.Set("sort_by", "best_match")
	if city != "" {
		params.Set("location", city)
	} else {
		params.Set("location", "Tokyo, Japan")
	}

	var result businessSearchResponse
	if err := c.get(ctx, "/businesses/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	locs := make([]model.Location, 0, len(result.Businesses))
	for _, business := range result.Businesses {
		locs = append(locs, business.toLocation())
	}
	return locs, nil
}

// Lookup fetches one business by its Yelp id.
func (c *YelpClient) Lookup(ctx context.Context, businessID string) (model.Location, error) {
	if c.apiKey == "" {
		return model.Location{}, ErrNoAPIKey
	}
	var business businessDetail
	if err := c.get(ctx, "/businesses/"+url.PathEscape(businessID), &business); err != nil {
		return model.Location{}, err
	}
	return business.toLocation(), nil
}

func (c *YelpClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	// Yelp Fusion API authentication
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	return nil
}

func (b businessDetail) toLocation() model.Location {
	loc := model.Location{
		ID:      "yelp-" + b.ID,
		Name:    b.Name,
		PlaceID: b.ID,
	}
	if b.Location != nil {
		loc.City = b.Location.City
		loc.Description = strings.Join(b.Location.DisplayAddress, ", ")
	}
	// Yelp reports 0,0 when a business has no coordinates.
	if b.Coordinates.Latitude != 0 || b.Coordinates.Longitude != 0 {
		lat, lng := b.Coordinates.Latitude, b.Coordinates.Longitude
		loc.Lat, loc.Lng = &lat, &lng
		loc.GoogleMapsURL = fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%f,%f", lat, lng)
	}
	if len(b.Categories) > 0 {
		loc.Type = b.Categories[0].Title
	}
	loc.PhotoURL = b.ImageURL
	return loc
}

// API response types

type businessSearchResponse struct {
	Businesses []businessDetail `json:"businesses"`
	Total      int              `json:"total"`
}

type businessDetail struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ImageURL    string      `json:"image_url"`
	URL         string      `json:"url"`
	Categories  []category  `json:"categories"`
	Coordinates coordinates `json:"coordinates"`
	Location    *location   `json:"location"`
}

type category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type location struct {
	Address1       string   `json:"address1"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	DisplayAddress []string `json:"display_address"`
}
