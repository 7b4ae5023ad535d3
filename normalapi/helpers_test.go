package normalapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// countingTransport records round trips and idle-connection teardowns
type countingTransport struct {
	base   http.RoundTripper
	calls  atomic.Int32
	closes atomic.Int32
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return t.base.RoundTrip(r)
}

func (t *countingTransport) CloseIdleConnections() {
	t.closes.Add(1)
}

// newTestClient starts a server for handler and returns a client pointed at it
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *countingTransport, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport := &countingTransport{base: http.DefaultTransport}
	client, err := NewClient(zerolog.Nop(),
		WithBaseURL(server.URL),
		WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, transport, server
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func fakeResponse(status int, contentType, body string) *Response {
	return newResponse(&http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {contentType}},
		Body:       io.NopCloser(strings.NewReader(body)),
	})
}
