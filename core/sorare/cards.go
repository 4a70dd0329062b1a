package sorare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"card-tracker/core/price"

	"go.uber.org/zap"
)

// GalleryRarities are the rarities listed by AllUserCards.
var GalleryRarities = []string{"limited", "rare", "super_rare", "unique"}

// Player is the player summary attached to a gallery card.
type Player struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
	Position    string `json:"position"`
	U23Eligible *bool  `json:"u23Eligible"`
}

// Card is a card in the user's gallery.
type Card struct {
	Slug       string  `json:"slug"`
	Rarity     string  `json:"rarity"`
	OwnerSince *string `json:"ownerSince"`
	Player     *Player `json:"player"`
}

// PageInfo is a Relay cursor.
type PageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// CardsPage is one page of gallery cards.
type CardsPage struct {
	Nodes    []Card   `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// UserCards fetches one page of the user's gallery after cursor.
func (c *Client) UserCards(ctx context.Context, cursor string) (*CardsPage, error) {
	vars := map[string]any{
		"userSlug": c.cfg.UserSlug,
		"rarities": GalleryRarities,
		"cursor":   nil,
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	var out struct {
		User *struct {
			Cards *CardsPage `json:"cards"`
		} `json:"user"`
	}
	if err := c.Do(ctx, allCardsQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.User == nil || out.User.Cards == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, c.cfg.UserSlug)
	}
	return out.User.Cards, nil
}

// AllUserCards walks every page of the user's gallery, sleeping pause
// between pages.
func (c *Client) AllUserCards(ctx context.Context, pause time.Duration) ([]Card, error) {
	var (
		cards  []Card
		cursor string
	)
	for page := 1; ; page++ {
		p, err := c.UserCards(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch gallery page %d: %w", page, err)
		}
		cards = append(cards, p.Nodes...)
		c.logger.Debug("Gallery page fetched", zap.Int("page", page), zap.Int("cards", len(p.Nodes)))

		if !p.PageInfo.HasNextPage || p.PageInfo.EndCursor == nil || *p.PageInfo.EndCursor == "" {
			return cards, nil
		}
		cursor = *p.PageInfo.EndCursor

		if pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pause):
			}
		}
	}
}

// TokenPrice is a recorded sale of a card.
type TokenPrice struct {
	Amounts *struct {
		EurCents *int64 `json:"eurCents"`
	} `json:"amounts"`
	Date string `json:"date"`
	Card *struct {
		InSeasonEligible *bool `json:"inSeasonEligible"`
	} `json:"card"`
}

// TokenDateLayout is the layout of TokenPrice.Date.
const TokenDateLayout = "2006-01-02T15:04:05Z"

// TokenPrices fetches the most recent sales of a player at a rarity.
func (c *Client) TokenPrices(ctx context.Context, playerSlug, rarity string, limit int) ([]TokenPrice, error) {
	var out struct {
		Tokens *struct {
			TokenPrices []TokenPrice `json:"tokenPrices"`
		} `json:"tokens"`
	}
	vars := map[string]any{"playerSlug": playerSlug, "rarity": rarity, "limit": limit}
	if err := c.Do(ctx, tokenPricesQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.Tokens == nil {
		return nil, nil
	}
	return out.Tokens.TokenPrices, nil
}

// SaleOffer is the live offer of a card.
type SaleOffer struct {
	ReceiverSide *struct {
		Amounts *price.Amounts `json:"amounts"`
	} `json:"receiverSide"`
}

// Offer holds a possibly absent live offer.
type Offer struct {
	LiveSingleSaleOffer *SaleOffer `json:"liveSingleSaleOffer"`
}

// Amounts returns the offer amounts, or nil.
func (o *Offer) Amounts() *price.Amounts {
	if o == nil || o.LiveSingleSaleOffer == nil || o.LiveSingleSaleOffer.ReceiverSide == nil {
		return nil
	}
	return o.LiveSingleSaleOffer.ReceiverSide.Amounts
}

// Team is a club in a game.
type Team struct {
	Name string `json:"name"`
}

// Game is an upcoming fixture of a club.
type Game struct {
	ID          string  `json:"id"`
	Date        *string `json:"date"`
	Competition *struct {
		DisplayName string `json:"displayName"`
	} `json:"competition"`
	HomeTeam *Team `json:"homeTeam"`
	AwayTeam *Team `json:"awayTeam"`
}

// Club is a player's active club.
type Club struct {
	Name          string `json:"name"`
	UpcomingGames []Game `json:"upcomingGames"`
}

// NextGame returns the first upcoming game, or nil.
func (c *Club) NextGame() *Game {
	if c == nil || len(c.UpcomingGames) == 0 {
		return nil
	}
	return &c.UpcomingGames[0]
}

// Injury is an active injury.
type Injury struct {
	Status          *string `json:"status"`
	ExpectedEndDate *string `json:"expectedEndDate"`
}

// Suspension is an active suspension.
type Suspension struct {
	Reason  *string `json:"reason"`
	EndDate *string `json:"endDate"`
}

// PlayerDetails is the player section of a card details response.
type PlayerDetails struct {
	Slug                      string `json:"slug"`
	DisplayName               string `json:"displayName"`
	Position                  string `json:"position"`
	LastFiveSo5Appearances    *int   `json:"lastFiveSo5Appearances"`
	LastFifteenSo5Appearances *int   `json:"lastFifteenSo5Appearances"`
	PlayerGameScores          []struct {
		Score *float64 `json:"score"`
	} `json:"playerGameScores"`
	ActiveInjuries    []Injury     `json:"activeInjuries"`
	ActiveSuspensions []Suspension `json:"activeSuspensions"`
	ActiveClub        *Club        `json:"activeClub"`
	U23Eligible       *bool        `json:"u23Eligible"`

	LimitedClassic    *Offer `json:"L_ANY"`
	LimitedInSeason   *Offer `json:"L_IN"`
	RareClassic       *Offer `json:"R_ANY"`
	RareInSeason      *Offer `json:"R_IN"`
	SuperRareClassic  *Offer `json:"SR_ANY"`
	SuperRareInSeason *Offer `json:"SR_IN"`
}

// Scores returns the non-null recent scores, most recent first.
func (p *PlayerDetails) Scores() []float64 {
	if p == nil {
		return nil
	}
	scores := make([]float64, 0, len(p.PlayerGameScores))
	for _, s := range p.PlayerGameScores {
		if s.Score != nil {
			scores = append(scores, *s.Score)
		}
	}
	return scores
}

// CardDetails is a card with its market and player data.
type CardDetails struct {
	Rarity                    string         `json:"rarity"`
	Grade                     *int           `json:"grade"`
	XP                        *int           `json:"xp"`
	XPNeededForNextGrade      *int           `json:"xpNeededForNextGrade"`
	PictureURL                *string        `json:"pictureUrl"`
	InSeasonEligible          *bool          `json:"inSeasonEligible"`
	SecondaryMarketFeeEnabled *bool          `json:"secondaryMarketFeeEnabled"`
	LiveSingleSaleOffer       *SaleOffer     `json:"liveSingleSaleOffer"`
	Player                    *PlayerDetails `json:"player"`
}

// SaleAmounts returns the amounts of the card's own live offer, or nil.
func (d *CardDetails) SaleAmounts() *price.Amounts {
	return (&Offer{LiveSingleSaleOffer: d.LiveSingleSaleOffer}).Amounts()
}

// CardDetails fetches a card by slug.
func (c *Client) CardDetails(ctx context.Context, slug string) (*CardDetails, error) {
	var out struct {
		AnyCard *CardDetails `json:"anyCard"`
	}
	if err := c.Do(ctx, cardDetailsQuery, map[string]any{"cardSlug": slug}, &out); err != nil {
		return nil, err
	}
	if out.AnyCard == nil {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, slug)
	}
	return out.AnyCard, nil
}

// Projection is the projected performance of a player in a game.
type Projection struct {
	Grade                  *string
	Score                  *float64
	ReliabilityBasisPoints *int
	StarterOddsBasisPoints *int
}

// Projection fetches the projection of a player for a game. gameID may carry
// a "Game:" prefix. A nil projection with no error means none is published.
func (c *Client) Projection(ctx context.Context, playerSlug, gameID string) (*Projection, error) {
	gameID = strings.TrimPrefix(gameID, "Game:")
	if playerSlug == "" || gameID == "" {
		return nil, nil
	}

	var out struct {
		Football *struct {
			Player *struct {
				PlayerGameScore *struct {
					Projection *struct {
						Grade                  *string  `json:"grade"`
						Score                  *float64 `json:"score"`
						ReliabilityBasisPoints *int     `json:"reliabilityBasisPoints"`
					} `json:"projection"`
					AnyPlayerGameStats *struct {
						FootballPlayingStatusOdds *struct {
							StarterOddsBasisPoints *int `json:"starterOddsBasisPoints"`
						} `json:"footballPlayingStatusOdds"`
					} `json:"anyPlayerGameStats"`
				} `json:"playerGameScore"`
			} `json:"player"`
		} `json:"football"`
	}
	vars := map[string]any{"playerSlug": playerSlug, "gameId": gameID}
	if err := c.Do(ctx, projectionQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.Football == nil || out.Football.Player == nil || out.Football.Player.PlayerGameScore == nil {
		return nil, nil
	}

	pgs := out.Football.Player.PlayerGameScore
	p := &Projection{}
	if pgs.Projection != nil {
		p.Grade = pgs.Projection.Grade
		p.Score = pgs.Projection.Score
		p.ReliabilityBasisPoints = pgs.Projection.ReliabilityBasisPoints
	}
	if pgs.AnyPlayerGameStats != nil && pgs.AnyPlayerGameStats.FootballPlayingStatusOdds != nil {
		p.StarterOddsBasisPoints = pgs.AnyPlayerGameStats.FootballPlayingStatusOdds.StarterOddsBasisPoints
	}
	return p, nil
}
