package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/fixtures"
	"transaction-analytics/internal/httpclient"
)

var (
	ErrSourceUnavailable = errors.New("seed source unavailable")
	ErrInvalidSnapshot   = errors.New("invalid seed snapshot")
)

// RemoteDataSource downloads the snapshot over HTTP
type RemoteDataSource struct {
	client httpclient.HTTPClient
	url    string
}

func NewRemoteDataSource(client httpclient.HTTPClient, url string) DataSourceInterface {
	return &RemoteDataSource{
		client: client,
		url:    url,
	}
}

func (d *RemoteDataSource) Name() string {
	return d.url
}

func (d *RemoteDataSource) Fetch(ctx context.Context) ([]dto.SeedRecord, error) {
	body, err := d.client.Fetch(ctx, d.url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return decodeSnapshot(body)
}

// FileDataSource reads the snapshot from a local file, or from the embedded
// fixture when no path is set
type FileDataSource struct {
	path string
}

func NewFileDataSource(path string) DataSourceInterface {
	return &FileDataSource{path: path}
}

func (d *FileDataSource) Name() string {
	if d.path == "" {
		return "embedded fixture"
	}
	return d.path
}

func (d *FileDataSource) Fetch(ctx context.Context) ([]dto.SeedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if d.path == "" {
		return decodeSnapshot(fixtures.ProductTransactions())
	}

	body, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return decodeSnapshot(body)
}

// NewDataSource picks the snapshot source described by cfg
func NewDataSource(cfg *config.SeedConfig) DataSourceInterface {
	if cfg.UsesFixture() {
		return NewFileDataSource(cfg.FixturePath)
	}
	return NewGuardedDataSource(
		NewRemoteDataSource(httpclient.NewHTTPClient(cfg.HTTPTimeout), cfg.SourceURL),
		NewCircuitBreaker(DefaultCircuitBreakerConfig()),
	)
}

func decodeSnapshot(body []byte) ([]dto.SeedRecord, error) {
	var records []dto.SeedRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return records, nil
}
