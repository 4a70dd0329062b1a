package charts

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"card-tracker/core/database"
	"card-tracker/core/sheets"
	"card-tracker/feature/cards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func f(v float64) *float64 { return &v }

func TestParseScores(t *testing.T) {
	scores := ParseScores("45.5, DNP, x, , 70")
	require.Len(t, scores, 4)
	assert.Equal(t, 45.5, *scores[0])
	assert.Equal(t, 0.0, *scores[1])
	assert.Nil(t, scores[2])
	assert.Equal(t, 70.0, *scores[3])

	t.Run("Non Finite Values Are Unreadable", func(t *testing.T) {
		scores := ParseScores("NaN, Inf, -Inf, 12")
		require.Len(t, scores, 4)
		assert.Nil(t, scores[0])
		assert.Nil(t, scores[1])
		assert.Nil(t, scores[2])
		assert.Equal(t, 12.0, *scores[3])

		bg, text := Color(scores[0])
		assert.Equal(t, MissingColor, bg)
		assert.Equal(t, "black", text)
	})
}

func TestColor(t *testing.T) {
	tests := []struct {
		name  string
		score *float64
		bg    string
		text  string
	}{
		{"Missing", nil, MissingColor, "black"},
		{"Zero", f(0), "rgba(255, 80, 80, 1)", "white"},
		{"Negative Clamped", f(-5), "rgba(255, 80, 80, 1)", "white"},
		{"Stop", f(40), "rgba(255, 255, 0, 1)", "black"},
		{"Between", f(50), "rgba(146, 246, 27, 1)", "black"},
		{"Top", f(100), "rgba(193, 229, 237, 1)", "black"},
		{"Above Clamped", f(130), "rgba(193, 229, 237, 1)", "black"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg, text := Color(tt.score)
			assert.Equal(t, tt.bg, bg)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"3° last", "2° last", "Latest"}, Labels(3))
	assert.Equal(t, []string{"Latest"}, Labels(1))
	assert.Nil(t, Labels(0))
}

func TestURL(t *testing.T) {
	u, err := URL(NewConfig("Player <A>", []*float64{f(10), nil}))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, BaseURL))

	raw, err := url.QueryUnescape(strings.TrimPrefix(u, BaseURL))
	require.NoError(t, err)
	assert.Contains(t, raw, `"text":"Player <A>"`)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	assert.Equal(t, "bar", cfg["type"])
	data := cfg["data"].(map[string]any)["datasets"].([]any)[0].(map[string]any)["data"].([]any)
	assert.Equal(t, []any{10.0, nil}, data)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	book := sheets.NewBook(db)
	require.NoError(t, book.Migrate(ctx))

	main, _, err := book.OpenOrCreate(ctx, cards.SheetTitle, cards.Headers)
	require.NoError(t, err)
	_, err = main.AppendRows(ctx, [][]string{
		cards.Row{cards.ColSlug: "a", cards.ColPlayerName: "Alpha", cards.ColLastScores: "80, 60, DNP"}.Values(),
		cards.Row{cards.ColSlug: "b", cards.ColPlayerName: "Beta"}.Values(),
	})
	require.NoError(t, err)

	// A stale chart sheet is wiped.
	old, _, err := book.OpenOrCreate(ctx, SheetTitle, Headers)
	require.NoError(t, err)
	_, err = old.AppendRows(ctx, [][]string{{"Old", "url"}, {"Older", "url"}})
	require.NoError(t, err)

	n, err := NewService(book, zap.NewNop()).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sheet, err := book.Worksheet(ctx, SheetTitle)
	require.NoError(t, err)
	records, err := sheet.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alpha", records[0].Get("Player"))

	raw, err := url.QueryUnescape(strings.TrimPrefix(records[0].Get("Chart URL"), BaseURL))
	require.NoError(t, err)
	// Oldest first.
	assert.Contains(t, raw, `"data":[0,60,80]`)
}
