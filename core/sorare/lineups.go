package sorare

import "context"

// Fixture is a game week.
type Fixture struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
}

// Leaderboard is a competition within a fixture.
type Leaderboard struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
}

// Appearance is a card fielded in a lineup.
type Appearance struct {
	Position *string `json:"position"`
	Captain  bool    `json:"captain"`
	Player   *struct {
		DisplayName string `json:"displayName"`
	} `json:"player"`
	AnyCard *struct {
		Slug        string `json:"slug"`
		RarityTyped string `json:"rarityTyped"`
	} `json:"anyCard"`
}

// Lineup is a user's team in a leaderboard.
type Lineup struct {
	Name        *string      `json:"name"`
	Appearances []Appearance `json:"so5Appearances"`
}

// CurrentFixture returns the started football fixture, or nil when none is
// running.
func (c *Client) CurrentFixture(ctx context.Context) (*Fixture, error) {
	var out struct {
		So5 *struct {
			So5Fixtures *struct {
				Nodes []Fixture `json:"nodes"`
			} `json:"so5Fixtures"`
		} `json:"so5"`
	}
	if err := c.Do(ctx, currentFixtureQuery, nil, &out); err != nil {
		return nil, err
	}
	if out.So5 == nil || out.So5.So5Fixtures == nil || len(out.So5.So5Fixtures.Nodes) == 0 {
		return nil, nil
	}
	return &out.So5.So5Fixtures.Nodes[0], nil
}

// Leaderboards lists the leaderboards of a fixture.
func (c *Client) Leaderboards(ctx context.Context, fixtureSlug string) ([]Leaderboard, error) {
	var out struct {
		So5 *struct {
			So5Fixture *struct {
				So5Leaderboards []Leaderboard `json:"so5Leaderboards"`
			} `json:"so5Fixture"`
		} `json:"so5"`
	}
	if err := c.Do(ctx, leaderboardsQuery, map[string]any{"slug": fixtureSlug}, &out); err != nil {
		return nil, err
	}
	if out.So5 == nil || out.So5.So5Fixture == nil {
		return nil, nil
	}
	return out.So5.So5Fixture.So5Leaderboards, nil
}

// UserLineups lists the configured user's lineups in a leaderboard.
func (c *Client) UserLineups(ctx context.Context, leaderboardSlug string) ([]Lineup, error) {
	var out struct {
		So5 *struct {
			So5Leaderboard *struct {
				So5LineupsPaginated *struct {
					Nodes []Lineup `json:"nodes"`
				} `json:"so5LineupsPaginated"`
			} `json:"so5Leaderboard"`
		} `json:"so5"`
	}
	vars := map[string]any{"slug": leaderboardSlug, "userSlug": c.cfg.UserSlug}
	if err := c.Do(ctx, userLineupsQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.So5 == nil || out.So5.So5Leaderboard == nil || out.So5.So5Leaderboard.So5LineupsPaginated == nil {
		return nil, nil
	}
	return out.So5.So5Leaderboard.So5LineupsPaginated.Nodes, nil
}
