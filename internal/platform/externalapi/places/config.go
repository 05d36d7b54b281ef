// Package places provides a venue search client for the Google Places Text Search API.
package places

import "time"

// DefaultBaseURL is the public Google Maps Platform endpoint.
const DefaultBaseURL = "https://maps.googleapis.com"

// Config holds configuration for the Google Places API client.
type Config struct {
	APIKey  string        // API key sent as the "key" query parameter
	BaseURL string        // Base URL for the API (e.g., "https://maps.googleapis.com")
	Timeout time.Duration // HTTP request timeout
}
