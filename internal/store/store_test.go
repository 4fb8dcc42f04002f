package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

// newTestMockStorages returns mock backend repositories over a migrated
// SQLite file in a temp dir.
func newTestMockStorages(t *testing.T) *MockStorages {
	t.Helper()

	s, err := NewMockStorages(context.Background(), filepath.Join(t.TempDir(), "mock.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}
