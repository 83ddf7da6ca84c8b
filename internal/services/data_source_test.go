package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/httpclient"
	"transaction-analytics/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `[
  {"id": 1, "title": "Backpack", "price": 109.95, "description": "Fits 15 inch laptops", "category": "men's clothing", "image": "https://img.test/1.jpg", "sold": false, "dateOfSale": "2021-11-27T20:29:54+05:30"},
  {"id": 2, "title": "Bracelet", "price": 695, "description": "Dragon", "category": "jewelery", "image": "https://img.test/2.jpg", "sold": true, "dateOfSale": "2022-03-27T20:29:54+05:30"}
]`

func TestRemoteDataSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(snapshotJSON))
	}))
	defer server.Close()

	source := NewRemoteDataSource(httpclient.NewHTTPClient(5*time.Second), server.URL)

	records, err := source.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Backpack", records[0].Title)
	assert.Equal(t, 109.95, records[0].Price)
	assert.True(t, records[1].Sold)
	assert.Equal(t, "2022-03-27T20:29:54+05:30", records[1].DateOfSale)
	assert.Equal(t, server.URL, source.Name())
}

func TestRemoteDataSource_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := NewRemoteDataSource(httpclient.NewHTTPClient(5*time.Second), server.URL)

	_, err := source.Fetch(context.Background())

	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRemoteDataSource_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	source := NewRemoteDataSource(httpclient.NewHTTPClient(5*time.Second), server.URL)

	_, err := source.Fetch(context.Background())

	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestFileDataSource_EmbeddedFixtureIsValid(t *testing.T) {
	source := NewFileDataSource("")

	records, err := source.Fetch(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, "embedded fixture", source.Name())
	for _, r := range records {
		assert.NoError(t, validation.GetValidator().Struct(r), r.Title)
	}
}

func TestFileDataSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o600))

	records, err := NewFileDataSource(path).Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFileDataSource_MissingFile(t *testing.T) {
	_, err := NewFileDataSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())

	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestNewDataSource(t *testing.T) {
	remote := NewDataSource(&config.SeedConfig{SourceURL: "https://example.test/data.json", HTTPTimeout: time.Second})
	assert.IsType(t, &GuardedDataSource{}, remote)
	assert.Equal(t, "https://example.test/data.json", remote.Name())

	file := NewDataSource(&config.SeedConfig{SourceURL: "https://example.test/data.json", FixturePath: "./x.json"})
	assert.IsType(t, &FileDataSource{}, file)

	embedded := NewDataSource(&config.SeedConfig{})
	assert.Equal(t, "embedded fixture", embedded.Name())
}
