// Package lineups lists the cards the user has fielded in the running game
// week.
//
// The lineup sheet is rebuilt on every run: one row per card appearance in
// the first lineups of each leaderboard of the started fixture, leaving out
// arena and common leaderboards. When nothing is found a single placeholder
// row says why.
package lineups
