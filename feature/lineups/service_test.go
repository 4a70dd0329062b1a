package lineups

import (
	"context"
	"errors"
	"testing"

	"card-tracker/core/database"
	"card-tracker/core/sheets"
	"card-tracker/core/sorare"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) UserSlug() string { return "alice" }

func (m *mockSource) CurrentFixture(ctx context.Context) (*sorare.Fixture, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).(*sorare.Fixture)
	return f, args.Error(1)
}

func (m *mockSource) Leaderboards(ctx context.Context, slug string) ([]sorare.Leaderboard, error) {
	args := m.Called(ctx, slug)
	lbs, _ := args.Get(0).([]sorare.Leaderboard)
	return lbs, args.Error(1)
}

func (m *mockSource) UserLineups(ctx context.Context, slug string) ([]sorare.Lineup, error) {
	args := m.Called(ctx, slug)
	l, _ := args.Get(0).([]sorare.Lineup)
	return l, args.Error(1)
}

func setupBook(t *testing.T) *sheets.Book {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	book := sheets.NewBook(db)
	require.NoError(t, book.Migrate(context.Background()))
	return book
}

func sheetRows(t *testing.T, book *sheets.Book) [][]string {
	sheet, err := book.Worksheet(context.Background(), SheetTitle)
	require.NoError(t, err)
	rows, err := sheet.Rows(context.Background())
	require.NoError(t, err)
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string(r.Values))
	}
	return out
}

func appearance(player, slug, rarity, pos string, captain bool) sorare.Appearance {
	a := sorare.Appearance{Position: &pos, Captain: captain}
	a.Player = &struct {
		DisplayName string `json:"displayName"`
	}{DisplayName: player}
	a.AnyCard = &struct {
		Slug        string `json:"slug"`
		RarityTyped string `json:"rarityTyped"`
	}{Slug: slug, RarityTyped: rarity}
	return a
}

func TestEligible(t *testing.T) {
	got := Eligible([]sorare.Leaderboard{
		{Slug: "a", DisplayName: "Arena Limited"},
		{Slug: "b", DisplayName: "Champion Europe"},
		{Slug: "c", DisplayName: "Common Cup"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Slug)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	book := setupBook(t)
	name := "Main"

	src := new(mockSource)
	src.On("CurrentFixture", ctx).Return(&sorare.Fixture{Slug: "gw-1", DisplayName: "GW 1"}, nil)
	src.On("Leaderboards", ctx, "gw-1").Return([]sorare.Leaderboard{
		{Slug: "champ", DisplayName: "Champion"},
		{Slug: "arena", DisplayName: "Arena"},
		{Slug: "broken", DisplayName: "Challenger"},
	}, nil)
	src.On("UserLineups", ctx, "champ").Return([]sorare.Lineup{{
		Name: &name,
		Appearances: []sorare.Appearance{
			appearance("Alpha", "alpha-card", "limited", "Forward", true),
			appearance("Beta", "beta-card", "rare", "Goalkeeper", false),
		},
	}}, nil)
	src.On("UserLineups", ctx, "broken").Return(nil, errors.New("boom"))

	res, err := NewService(book, src, 0, zap.NewNop()).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Result{Fixture: "GW 1", Leaderboards: 2, Cards: 2, Failed: 1}, res)

	rows := sheetRows(t, book)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"Champion", "Main", "Alpha", "alpha-card", "limited", "Forward", "Yes"}, rows[1])
	assert.Equal(t, "No", rows[2][6])
	src.AssertNotCalled(t, "UserLineups", ctx, "arena")
}

func TestService_NoFixture(t *testing.T) {
	ctx := context.Background()
	book := setupBook(t)

	src := new(mockSource)
	src.On("CurrentFixture", ctx).Return(nil, nil)

	res, err := NewService(book, src, 0, zap.NewNop()).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Cards)

	rows := sheetRows(t, book)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1][0], "no active game week")
}

func TestService_NothingFielded(t *testing.T) {
	ctx := context.Background()
	book := setupBook(t)

	src := new(mockSource)
	src.On("CurrentFixture", ctx).Return(&sorare.Fixture{Slug: "gw"}, nil)
	src.On("Leaderboards", ctx, "gw").Return([]sorare.Leaderboard{{Slug: "x", DisplayName: "X"}}, nil)
	src.On("UserLineups", ctx, "x").Return([]sorare.Lineup{}, nil)

	_, err := NewService(book, src, 0, zap.NewNop()).Run(ctx)
	require.NoError(t, err)

	rows := sheetRows(t, book)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1][0], "user 'alice'")
}

func TestMessage(t *testing.T) {
	assert.Contains(t, Message(&Result{}), "No active game week")
	assert.Contains(t, Message(&Result{Fixture: "GW 1", Leaderboards: 2, Cards: 5}), "Cards fielded: 5")
}
