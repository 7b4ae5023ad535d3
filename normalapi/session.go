package normalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Session owns the HTTP client shared by every call of a Client.
// The client is created on the first request, not when the Session is built,
// and is safe for concurrent use by in-flight requests.
type Session struct {
	mu        sync.Mutex
	client    *http.Client
	provided  *http.Client
	timeout   time.Duration
	userAgent string
	logger    zerolog.Logger
}

// NewSession creates a Session. A nil httpClient means one is created lazily
// with the given timeout.
func NewSession(httpClient *http.Client, timeout time.Duration, userAgent string, logger zerolog.Logger) *Session {
	return &Session{
		provided:  httpClient,
		timeout:   timeout,
		userAgent: userAgent,
		logger:    logger,
	}
}

// httpClient returns the live client, creating it if needed.
func (s *Session) httpClient() *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		if s.provided != nil {
			s.client = s.provided
		} else {
			s.client = &http.Client{Timeout: s.timeout}
		}
	}
	return s.client
}

// Request performs a GET against rawURL. The body is left unread; callers
// must consume it through the Response accessors or call Close.
func (s *Session) Request(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	r := newResponse(resp)
	s.logger.Debug().
		Str("url", rawURL).
		Int("status", r.StatusCode).
		Str("content_type", r.ContentType).
		Msg("normal-api request")

	return r, nil
}

// Close releases the pooled connections. Closing a Session that never made
// a request, or closing it twice, does nothing. A later Request starts over.
// A Session built on http.DefaultClient leaves its connections alone.
func (s *Session) Close() {
	s.mu.Lock()
	client := s.client
	s.client = nil
	s.mu.Unlock()

	// http.DefaultClient shares its pool with the rest of the process
	if client == nil || client == http.DefaultClient {
		return
	}
	client.CloseIdleConnections()
	s.logger.Debug().Msg("normal-api session closed")
}

// Response is a completed HTTP response whose body is read on demand.
type Response struct {
	StatusCode  int
	ContentType string
	// URL is the final request URL, after redirects.
	URL string

	raw  *http.Response
	once sync.Once
	body []byte
	err  error
}

func newResponse(resp *http.Response) *Response {
	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	r := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		raw:         resp,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		r.URL = resp.Request.URL.String()
	}
	return r
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.raw.Header
}

// IsJSON reports whether the declared content type is application/json.
func (r *Response) IsJSON() bool {
	return r.ContentType == "application/json"
}

// Bytes reads the whole body once and closes it. Later calls return the
// same bytes.
func (r *Response) Bytes() ([]byte, error) {
	r.once.Do(func() {
		defer r.raw.Body.Close()
		r.body, r.err = io.ReadAll(r.raw.Body)
		if r.err != nil {
			r.err = fmt.Errorf("failed to read response body: %w", r.err)
		}
	})
	return r.body, r.err
}

// Text returns the body as a string.
func (r *Response) Text() (string, error) {
	body, err := r.Bytes()
	return string(body), err
}

// JSON decodes the body as a JSON object. Numbers are kept as json.Number.
func (r *Response) JSON() (map[string]any, error) {
	body, err := r.Bytes()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("failed to parse response: body is not a JSON object")
	}
	return data, nil
}

// Close discards the body without reading it.
func (r *Response) Close() error {
	return r.raw.Body.Close()
}
