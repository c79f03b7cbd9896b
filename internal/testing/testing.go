// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/mdeloughry/portify/internal/models"
)

// MockCatalog is a test double for services.Catalog. Unset function fields
// fall back to empty results.
type MockCatalog struct {
	SearchFn     func(ctx context.Context, query string, limit int) ([]models.Track, error)
	PlaylistFn   func(ctx context.Context, playlistID string, max int) (string, []models.Track, error)
	TrackFn      func(ctx context.Context, trackID string) (*models.Track, error)
	CheckSavedFn func(ctx context.Context, ids []string) ([]bool, error)
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, query, limit)
}

func (m *MockCatalog) PlaylistTracks(ctx context.Context, playlistID string, max int) (string, []models.Track, error) {
	if m.PlaylistFn == nil {
		return "", nil, nil
	}
	return m.PlaylistFn(ctx, playlistID, max)
}

func (m *MockCatalog) Track(ctx context.Context, trackID string) (*models.Track, error) {
	if m.TrackFn == nil {
		return nil, errors.New("not found")
	}
	return m.TrackFn(ctx, trackID)
}

func (m *MockCatalog) CheckSaved(ctx context.Context, ids []string) ([]bool, error) {
	if m.CheckSavedFn == nil {
		return make([]bool, len(ids)), nil
	}
	return m.CheckSavedFn(ctx, ids)
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
