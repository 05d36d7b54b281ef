// Package yelp provides a venue search client for the Yelp Fusion API.
package yelp

import "time"

// DefaultBaseURL is the public Yelp Fusion endpoint.
const DefaultBaseURL = "https://api.yelp.com"

// Config holds configuration for the Yelp Fusion API client.
type Config struct {
	APIKey  string        // API key sent as a bearer token
	BaseURL string        // Base URL for the API (e.g., "https://api.yelp.com")
	Timeout time.Duration // HTTP request timeout
}
