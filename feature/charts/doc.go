// Package charts renders the recent SO5 scores of every player as a bar
// chart image URL.
//
// The chart sheet is rebuilt on every run. For each main sheet row with a
// "Last 15 SO5 Scores" value, the scores are reversed so the newest bar is
// on the right, colored along a red to silver gradient (0, 40, 60, 75, 100)
// and encoded as a Chart.js config in a QuickChart URL. Bar labels use black
// text on light colors and white text on dark ones.
package charts
