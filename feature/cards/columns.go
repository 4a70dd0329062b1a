package cards

// SheetTitle is the worksheet holding one row per owned card.
const SheetTitle = "Cards"

// Main sheet columns.
const (
	ColSlug             = "Slug"
	ColRarity           = "Rarity"
	ColPlayerName       = "Player Name"
	ColPlayerSlug       = "Player API Slug"
	ColPosition         = "Position"
	ColU23Eligible      = "U23 Eligible?"
	ColLevel            = "Level"
	ColInSeason         = "In Season?"
	ColXP               = "Current XP"
	ColNextLevelXP      = "Next Level XP"
	ColXPToNextLevel    = "XP To Next Level"
	ColSalePrice        = "Sale Price (EUR)"
	ColFloorLimited     = "Floor Classic Limited"
	ColFloorRare        = "Floor Classic Rare"
	ColFloorSuperRare   = "Floor Classic SR"
	ColFloorInLimited   = "Floor In Season Limited"
	ColFloorInRare      = "Floor In Season Rare"
	ColFloorInSuperRare = "Floor In Season SR"
	ColL5               = "L5 So5 (%)"
	ColL15              = "L15 So5 (%)"
	ColAvg3             = "Avg So5 Score (3)"
	ColAvg5             = "Avg So5 Score (5)"
	ColAvg15            = "Avg So5 Score (15)"
	ColLastScores       = "Last 15 SO5 Scores"
	ColNextGame         = "Next Game"
	ColNextGameDate     = "Next Game Date"
	ColNextGameID       = "Next Game API ID"
	ColProjectionGrade  = "Projection Grade"
	ColProjectedScore   = "Projected Score"
	ColReliability      = "Projection Reliability (%)"
	ColStarterOdds      = "Starter Odds (%)"
	ColFeeEnabled       = "Fee Enabled?"
	ColInjury           = "Injury"
	ColSuspension       = "Suspension"
	ColLastUpdated      = "Last Updated"
	ColOwnerSince       = "Owner Since"
	ColPictureURL       = "Picture URL"
)

// Headers is the header row of the main sheet, in column order.
var Headers = []string{
	ColSlug, ColRarity, ColPlayerName, ColPlayerSlug, ColPosition, ColU23Eligible,
	ColLevel, ColInSeason, ColXP, ColNextLevelXP, ColXPToNextLevel, ColSalePrice,
	ColFloorLimited, ColFloorRare, ColFloorSuperRare,
	ColFloorInLimited, ColFloorInRare, ColFloorInSuperRare,
	ColL5, ColL15, ColAvg3, ColAvg5, ColAvg15, ColLastScores,
	ColNextGame, ColNextGameDate, ColNextGameID,
	ColProjectionGrade, ColProjectedScore, ColReliability, ColStarterOdds,
	ColFeeEnabled, ColInjury, ColSuspension, ColLastUpdated, ColOwnerSince, ColPictureURL,
}

// Row is a main sheet row keyed by column.
type Row map[string]string

// Values returns the row in Headers order.
func (r Row) Values() []string {
	out := make([]string, len(Headers))
	for i, h := range Headers {
		out[i] = r[h]
	}
	return out
}
