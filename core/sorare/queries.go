package sorare

const allCardsQuery = `
query AllCardsFromUser($userSlug: String!, $rarities: [Rarity!], $cursor: String) {
  user(slug: $userSlug) {
    cards(rarities: $rarities, after: $cursor, first: 50) {
      nodes { ... on Card { slug rarity ownerSince player { ... on Player { displayName slug position u23Eligible } } } }
      pageInfo { endCursor hasNextPage }
    }
  }
}`

const tokenPricesQuery = `
query GetPlayerTokenPrices($playerSlug: String!, $rarity: Rarity!, $limit: Int!) {
  tokens {
    tokenPrices(playerSlug: $playerSlug, rarity: $rarity, first: $limit, includePrivateSales: true) {
      amounts { eurCents }
      date
      card { inSeasonEligible }
    }
  }
}`

const priceFragment = `liveSingleSaleOffer { receiverSide { amounts { eurCents usdCents gbpCents wei referenceCurrency } } }`

const cardDetailsQuery = `
query GetCardDetails($cardSlug: String!) {
  anyCard(slug: $cardSlug) {
    ... on Card {
      rarity grade xp xpNeededForNextGrade pictureUrl inSeasonEligible secondaryMarketFeeEnabled
      ` + priceFragment + `
      player {
        slug displayName position lastFiveSo5Appearances lastFifteenSo5Appearances
        playerGameScores(last: 15) { score }
        activeInjuries { status expectedEndDate }
        activeSuspensions { reason endDate }
        activeClub { name upcomingGames(first: 1) { id date competition { displayName } homeTeam { ... on TeamInterface { name } } awayTeam { ... on TeamInterface { name } } } }
        u23Eligible
        L_ANY: lowestPriceAnyCard(rarity: limited, inSeason: false) { ` + priceFragment + ` }
        L_IN: lowestPriceAnyCard(rarity: limited, inSeason: true) { ` + priceFragment + ` }
        R_ANY: lowestPriceAnyCard(rarity: rare, inSeason: false) { ` + priceFragment + ` }
        R_IN: lowestPriceAnyCard(rarity: rare, inSeason: true) { ` + priceFragment + ` }
        SR_ANY: lowestPriceAnyCard(rarity: super_rare, inSeason: false) { ` + priceFragment + ` }
        SR_IN: lowestPriceAnyCard(rarity: super_rare, inSeason: true) { ` + priceFragment + ` }
      }
    }
  }
}`

const projectionQuery = `
query GetProjection($playerSlug: String!, $gameId: ID!) {
  football {
    player(slug: $playerSlug) {
      playerGameScore(gameId: $gameId) {
        projection { grade score reliabilityBasisPoints }
        anyPlayerGameStats { ... on PlayerGameStats { footballPlayingStatusOdds { starterOddsBasisPoints } } }
      }
    }
  }
}`

const currentFixtureQuery = `
query GetCurrentFixture {
  so5 {
    so5Fixtures(sport: FOOTBALL, aasmStates: ["started"], first: 1) { nodes { slug displayName } }
  }
}`

const leaderboardsQuery = `
query GetLeaderboardsFromFixture($slug: String!) {
  so5 {
    so5Fixture(slug: $slug) { so5Leaderboards { slug displayName } }
  }
}`

const userLineupsQuery = `
query GetUserLineups($slug: String!, $userSlug: String!) {
  so5 {
    so5Leaderboard(slug: $slug) {
      so5LineupsPaginated(first: 10, userSlug: $userSlug) {
        nodes {
          name
          so5Appearances { position captain player { displayName } anyCard { slug rarityTyped } }
        }
      }
    }
  }
}`
