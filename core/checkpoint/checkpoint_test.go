package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memBackend is an in-memory Backend for tests.
type memBackend struct {
	data    map[string][]byte
	readErr error
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string][]byte)}
}

func (m *memBackend) Read(_ context.Context, ns string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	d, ok := m.data[ns]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *memBackend) Write(_ context.Context, ns string, data []byte) error {
	m.data[ns] = data
	return nil
}

func (m *memBackend) Delete(_ context.Context, ns string) error {
	if _, ok := m.data[ns]; !ok {
		return ErrNotFound
	}
	delete(m.data, ns)
	return nil
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		stored    string
		readErr   error
		wantIndex int
		wantEmpty bool
	}{
		{name: "Missing", wantEmpty: true},
		{name: "Corrupt", stored: "{not json", wantEmpty: true},
		{name: "Negative Index", stored: `{"last_index": -3}`, wantEmpty: true},
		{name: "Backend Failure", readErr: errors.New("disk gone"), wantEmpty: true},
		{name: "Valid", stored: `{"last_index": 2, "work_list": ["a","b","c"]}`, wantIndex: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newMemBackend()
			b.readErr = tt.readErr
			if tt.stored != "" {
				b.data["update-sales"] = []byte(tt.stored)
			}

			cp := NewStore(b, "update-sales", zap.NewNop()).Load(ctx)
			require.NotNil(t, cp)
			assert.Equal(t, tt.wantEmpty, cp.IsEmpty())
			assert.Equal(t, tt.wantIndex, cp.LastIndex)
		})
	}
}

func TestStore_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s := NewStore(b, "update-cards", zap.NewNop())
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	work, _ := json.Marshal([]string{"x", "y"})
	require.NoError(t, s.Save(ctx, &Checkpoint{LastIndex: 1, WorkList: work}))

	loaded := s.Load(ctx)
	assert.Equal(t, 1, loaded.LastIndex)
	assert.JSONEq(t, `["x","y"]`, string(loaded.WorkList))
	assert.True(t, fixed.Equal(loaded.SavedAt))

	require.NoError(t, s.Clear(ctx))
	assert.True(t, s.Load(ctx).IsEmpty())

	// Clearing twice is fine.
	assert.NoError(t, s.Clear(ctx))
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	_, err = b.Read(ctx, "update-cards")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Write(ctx, "update-cards", []byte(`{"last_index":4}`)))
	data, err := b.Read(ctx, "update-cards")
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_index":4}`, string(data))

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, b.Delete(ctx, "update-cards"))
	assert.ErrorIs(t, b.Delete(ctx, "update-cards"), ErrNotFound)
}
