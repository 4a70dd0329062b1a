package sink

import (
	"context"
	"errors"
	"testing"

	"card-tracker/core/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTarget struct {
	mock.Mock
}

func (m *mockTarget) BatchUpdate(ctx context.Context, updates []sheets.RowUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *mockTarget) AppendRows(ctx context.Context, rows [][]string) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

func TestWriter_Flush(t *testing.T) {
	ctx := context.Background()
	target := new(mockTarget)
	target.On("BatchUpdate", ctx, []sheets.RowUpdate{{RowIndex: 4, Values: []string{"x"}}}).Return(nil).Once()
	target.On("AppendRows", ctx, [][]string{{"new"}}).Return(7, nil).Once()

	w := NewWriter(target)
	w.Put(4, []string{"x"})
	w.Put(0, []string{"new"})

	u, a := w.Pending()
	assert.Equal(t, 1, u)
	assert.Equal(t, 1, a)

	require.NoError(t, w.Flush(ctx))
	u, a = w.Pending()
	assert.Zero(t, u)
	assert.Zero(t, a)

	// Nothing pending: no calls.
	require.NoError(t, w.Flush(ctx))
	target.AssertExpectations(t)
}

func TestWriter_FlushFailureKeepsBuffer(t *testing.T) {
	ctx := context.Background()
	target := new(mockTarget)
	target.On("BatchUpdate", ctx, mock.Anything).Return(nil).Once()
	target.On("AppendRows", ctx, mock.Anything).Return(0, errors.New("quota exceeded")).Once()

	w := NewWriter(target)
	w.Put(2, []string{"a"})
	w.Put(0, []string{"b"})

	err := w.Flush(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	u, a := w.Pending()
	assert.Zero(t, u, "updates were written")
	assert.Equal(t, 1, a, "appends are retried on the next flush")

	target.On("AppendRows", ctx, [][]string{{"b"}}).Return(3, nil).Once()
	require.NoError(t, w.Flush(ctx))
	target.AssertExpectations(t)
}

func TestWriter_WithSheet(t *testing.T) {
	var _ Target = (*sheets.Sheet)(nil)
}
