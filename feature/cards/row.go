package cards

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"card-tracker/core/price"
	"card-tracker/core/reconcile"
	"card-tracker/core/sorare"
	"card-tracker/core/utils"
)

// Display layouts.
const (
	EndDateLayout  = "02/01/06"
	GameDateLayout = "02-01-06 15:04"
)

// DefaultGrade is shown when no projection grade is published.
const DefaultGrade = "G"

// NewRow builds the initial row of a gallery card. Columns that need a
// details query are left empty until the next update.
func NewRow(card sorare.Card) Row {
	row := Row{
		ColSlug:       card.Slug,
		ColRarity:     card.Rarity,
		ColOwnerSince: utils.Text(card.OwnerSince),
	}
	if p := card.Player; p != nil {
		row[ColPlayerName] = p.DisplayName
		row[ColPlayerSlug] = p.Slug
		row[ColPosition] = p.Position
		row[ColU23Eligible] = utils.YesNo(p.U23Eligible)
	}
	return row
}

// BuildRow merges fresh card details into the previous values of a row.
// proj may be nil.
func BuildRow(prev map[string]string, d *sorare.CardDetails, proj *sorare.Projection, rates price.Rates, now time.Time, loc *time.Location) Row {
	if loc == nil {
		loc = time.UTC
	}

	row := make(Row, len(Headers))
	for _, h := range Headers {
		row[h] = prev[h]
	}

	// 1. Card
	if d.Rarity != "" {
		row[ColRarity] = d.Rarity
	}
	row[ColLevel] = utils.Int(d.Grade)
	row[ColXP] = utils.Int(d.XP)
	row[ColNextLevelXP] = utils.Int(d.XPNeededForNextGrade)
	row[ColXPToNextLevel] = ""
	if d.XP != nil && d.XPNeededForNextGrade != nil {
		row[ColXPToNextLevel] = strconv.Itoa(*d.XPNeededForNextGrade - *d.XP)
	}
	row[ColInSeason] = utils.YesNo(d.InSeasonEligible)
	row[ColFeeEnabled] = utils.YesNo(d.SecondaryMarketFeeEnabled)
	row[ColPictureURL] = utils.Text(d.PictureURL)
	row[ColSalePrice] = eur(d.SaleAmounts(), rates)

	// 2. Projection
	row[ColProjectionGrade] = DefaultGrade
	row[ColProjectedScore] = ""
	row[ColReliability] = ""
	row[ColStarterOdds] = ""
	if proj != nil {
		if proj.Grade != nil && *proj.Grade != "" {
			row[ColProjectionGrade] = *proj.Grade
		}
		row[ColProjectedScore] = utils.Float(proj.Score)
		row[ColReliability] = utils.BasisPoints(proj.ReliabilityBasisPoints)
		row[ColStarterOdds] = utils.BasisPoints(proj.StarterOddsBasisPoints)
	}

	// 3. Player
	if p := d.Player; p != nil {
		if p.DisplayName != "" {
			row[ColPlayerName] = p.DisplayName
		}
		if p.Slug != "" {
			row[ColPlayerSlug] = p.Slug
		}
		if p.Position != "" {
			row[ColPosition] = p.Position
		}
		if p.U23Eligible != nil {
			row[ColU23Eligible] = utils.YesNo(p.U23Eligible)
		}

		row[ColFloorLimited] = eur(p.LimitedClassic.Amounts(), rates)
		row[ColFloorRare] = eur(p.RareClassic.Amounts(), rates)
		row[ColFloorSuperRare] = eur(p.SuperRareClassic.Amounts(), rates)
		row[ColFloorInLimited] = eur(p.LimitedInSeason.Amounts(), rates)
		row[ColFloorInRare] = eur(p.RareInSeason.Amounts(), rates)
		row[ColFloorInSuperRare] = eur(p.SuperRareInSeason.Amounts(), rates)

		if p.LastFiveSo5Appearances != nil {
			row[ColL5] = utils.Share(p.LastFiveSo5Appearances, 5)
		}
		if p.LastFifteenSo5Appearances != nil {
			row[ColL15] = utils.Share(p.LastFifteenSo5Appearances, 15)
		}

		if scores := p.Scores(); len(scores) > 0 {
			row[ColAvg3] = ""
			row[ColAvg5] = ""
			if len(scores) >= 3 {
				row[ColAvg3] = score(mean(scores[:3]))
			}
			if len(scores) >= 5 {
				row[ColAvg5] = score(mean(scores[:5]))
			}
			row[ColAvg15] = score(mean(scores))
			row[ColLastScores] = JoinScores(scores)
		}

		row[ColInjury] = ""
		if len(p.ActiveInjuries) > 0 {
			in := p.ActiveInjuries[0]
			row[ColInjury] = until(in.Status, "Injured", in.ExpectedEndDate)
		}
		row[ColSuspension] = ""
		if len(p.ActiveSuspensions) > 0 {
			s := p.ActiveSuspensions[0]
			row[ColSuspension] = until(s.Reason, "Suspended", s.EndDate)
		}

		row[ColNextGame], row[ColNextGameDate], row[ColNextGameID] = nextGame(p.ActiveClub, loc)
	} else {
		row[ColNextGame], row[ColNextGameDate], row[ColNextGameID] = nextGame(nil, loc)
	}

	row[ColLastUpdated] = now.In(loc).Format(reconcile.DateLayout)
	return row
}

// GameID returns the id of the player's next game, or "".
func GameID(d *sorare.CardDetails) string {
	if d == nil || d.Player == nil {
		return ""
	}
	if g := d.Player.ActiveClub.NextGame(); g != nil {
		return g.ID
	}
	return ""
}

// JoinScores renders scores as a comma separated list.
func JoinScores(scores []float64) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.FormatFloat(s, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func eur(amounts *price.Amounts, rates price.Rates) string {
	v, ok := price.ToEUR(amounts, rates)
	if !ok {
		return ""
	}
	return price.Format(v)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func score(v float64) string {
	return strconv.FormatFloat(price.Round(v), 'f', -1, 64)
}

// until renders "<label> until dd/mm/yy", or "" without an end date.
func until(label *string, fallback string, end *string) string {
	date := utils.Reformat(end, EndDateLayout, time.UTC)
	if date == "" {
		return ""
	}
	text := fallback
	if label != nil && *label != "" {
		text = *label
	}
	return fmt.Sprintf("%s until %s", text, date)
}

// nextGame renders the next game, its date and id.
func nextGame(club *sorare.Club, loc *time.Location) (game, date, id string) {
	g := club.NextGame()
	if g == nil {
		return "No game", "", ""
	}
	date = utils.Reformat(g.Date, GameDateLayout, loc)
	if date == "" {
		return "No date", "", ""
	}

	var home, away, comp string
	if g.HomeTeam != nil {
		home = g.HomeTeam.Name
	}
	if g.AwayTeam != nil {
		away = g.AwayTeam.Name
	}
	if g.Competition != nil {
		comp = g.Competition.DisplayName
	}

	if home == club.Name {
		return fmt.Sprintf("Home vs %s [%s]", away, comp), date, g.ID
	}
	return fmt.Sprintf("Away vs %s [%s]", home, comp), date, g.ID
}
