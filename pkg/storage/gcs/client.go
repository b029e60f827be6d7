package gcs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"stratus/internal/config"
	"stratus/internal/provider"
	"stratus/pkg/common"
	"stratus/pkg/storage"
)

const providerName = "gcs"

func init() {
	provider.Register(providerName, provider.Registration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks if the GCS configuration block is present and the project ID is set
func isConfigured(cfg *config.Config) bool {
	return cfg.GCS != nil && cfg.GCS.Project != ""
}

// Initializes the GCS storage client from the configuration
func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("GCS configuration missing or incomplete")
	}
	return NewGCSStorage(ctx, Config{
		ProjectID:       cfg.GCS.Project,
		CredentialsFile: cfg.GCS.CredentialsFile,
		Endpoint:        cfg.GCS.Endpoint,
	}, logger)
}

// Config carries the driver settings. Endpoint and HTTPClient exist for
// tests and API-compatible emulators; both default to the real service.
type Config struct {
	ProjectID       string
	CredentialsFile string
	Endpoint        string
	HTTPClient      *http.Client
}

// GCSStorage implements storage.Storage against the Google Cloud
// Storage JSON API. It is stateless between calls apart from the
// project id fixed at construction.
type GCSStorage struct {
	conn      *Connection
	projectID string
	logger    *slog.Logger
}

var _ storage.Storage = (*GCSStorage)(nil)

func NewGCSStorage(ctx context.Context, cfg Config, logger *slog.Logger) (*GCSStorage, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GCS project ID is required")
	}

	conn, err := NewConnection(ctx, ConnectionConfig{
		CredentialsFile: cfg.CredentialsFile,
		Endpoint:        cfg.Endpoint,
		HTTPClient:      cfg.HTTPClient,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS connection: %w", err)
	}

	return &GCSStorage{
		conn:      conn,
		projectID: cfg.ProjectID,
		logger:    logger,
	}, nil
}

func (g *GCSStorage) ProviderName() common.Provider {
	return common.GCS
}

func (g *GCSStorage) Close() error {
	if g.conn != nil {
		return g.conn.Close()
	}
	return nil
}
