package gcs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStorage starts a fake API server and returns a driver pointed
// at it. The server is torn down with the test.
func newTestStorage(t *testing.T, handler http.Handler) (*GCSStorage, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGCSStorage(context.Background(), Config{
		ProjectID:  "test-project",
		Endpoint:   srv.URL,
		HTTPClient: srv.Client(),
	}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })

	return g, srv
}
