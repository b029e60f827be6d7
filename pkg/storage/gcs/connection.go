package gcs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"

	"stratus/pkg/storage"
)

const (
	defaultHost = "https://www.googleapis.com"
	apiVersion  = "v1"

	// ScopeFullControl grants full control over buckets and objects.
	ScopeFullControl = "https://www.googleapis.com/auth/devstorage.full_control"
)

// Connection issues authenticated JSON requests against the storage
// API. It holds no per-listing state: continuation tokens are passed
// explicitly by callers, so a single Connection is safe for concurrent
// use.
type Connection struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// ConnectionConfig controls how a Connection authenticates and where
// it points. When HTTPClient is set it is used as-is and is assumed to
// handle authorization; otherwise OAuth2 credentials are resolved from
// CredentialsFile or Application Default Credentials.
type ConnectionConfig struct {
	CredentialsFile string
	Endpoint        string
	HTTPClient      *http.Client
}

func NewConnection(ctx context.Context, cfg ConnectionConfig, logger *slog.Logger) (*Connection, error) {
	client := cfg.HTTPClient
	if client == nil {
		var err error
		client, err = newAuthorizedClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
	}

	host := cfg.Endpoint
	if host == "" {
		host = defaultHost
	}

	return &Connection{
		client:  client,
		baseURL: host + "/storage/" + apiVersion,
		logger:  logger,
	}, nil
}

func newAuthorizedClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, ScopeFullControl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		return oauth2.NewClient(ctx, creds.TokenSource), nil
	}

	client, err := google.DefaultClient(ctx, ScopeFullControl)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default credentials: %w", err)
	}
	return client, nil
}

// Response is a parsed API response: the HTTP status and the raw body.
// Successful deletes answer with an exactly empty body, which callers
// distinguish from non-empty success bodies.
type Response struct {
	StatusCode int
	Body       []byte
}

// Empty reports whether the response body is exactly empty.
func (r *Response) Empty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}

// Decode unmarshals the response body into v. Decoding an empty body is
// a no-op.
func (r *Response) Decode(v any) error {
	if r.Empty() {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Request sends one JSON request and returns the parsed response.
// Non-2xx statuses are converted into the storage error taxonomy;
// provider errors the taxonomy does not model propagate unchanged as
// *googleapi.Error.
func (c *Connection) Request(ctx context.Context, method, path string, params url.Values, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, params, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Sending storage API request", "method", method, "path", path)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, translateAPIError(err)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: res.StatusCode, Body: data}, nil
}

// Media sends a GET for raw object content and returns the body stream.
// The caller owns the returned ReadCloser.
func (c *Connection) Media(ctx context.Context, path string, params url.Values) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Sending storage media request", "path", path)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if err := googleapi.CheckMediaResponse(res); err != nil {
		res.Body.Close()
		return nil, translateAPIError(err)
	}

	return res.Body, nil
}

func (c *Connection) newRequest(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

// Close releases idle transport connections.
func (c *Connection) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// translateAPIError maps the generic HTTP-status error produced by
// googleapi.CheckResponse onto the storage error taxonomy. Statuses the
// taxonomy does not model keep their original error.
func translateAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", storage.ErrNotFound, apiErr.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, apiErr.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", storage.ErrAccessDenied, apiErr.Message)
	}
	return apiErr
}
