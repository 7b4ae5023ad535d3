package normalapi

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the origin every endpoint path is appended to.
const DefaultBaseURL = "https://normal-api.ml/"

// Version is reported in the default User-Agent header.
var Version = "dev"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: "normalapi-go/" + Version,
	}
}

// WithBaseURL points the client at a different API origin.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient makes the session use the given HTTP client instead of
// creating its own on first use. Close still releases its idle connections,
// except for http.DefaultClient, whose pool is shared process wide.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
// Zero keeps the net/http default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
