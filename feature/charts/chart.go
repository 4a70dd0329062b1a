package charts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// BaseURL renders a Chart.js config as an image.
const BaseURL = "https://quickchart.io/chart?w=500&h=300&bkg=transparent&c="

// MissingColor is the bar color of a score that could not be read.
const MissingColor = "rgba(200, 200, 200, 1)"

type rgb struct{ r, g, b float64 }

type stop struct {
	score float64
	color rgb
}

// stops go red, yellow, green, light blue, silver.
var stops = []stop{
	{0, rgb{255, 80, 80}},
	{40, rgb{255, 255, 0}},
	{60, rgb{37, 237, 54}},
	{75, rgb{0, 243, 235}},
	{100, rgb{193, 229, 237}},
}

// ParseScores reads a comma separated score list. "DNP" counts as zero and
// unreadable entries are nil.
func ParseScores(text string) []*float64 {
	var scores []*float64
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "DNP") {
			zero := 0.0
			scores = append(scores, &zero)
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			scores = append(scores, nil)
			continue
		}
		scores = append(scores, &v)
	}
	return scores
}

// Color returns the bar color of a score and the text color that reads best
// on it.
func Color(score *float64) (background, text string) {
	if score == nil {
		return MissingColor, "black"
	}
	s := min(max(*score, 0), 100)

	from, to := stops[0], stops[len(stops)-1]
	for i := 0; i < len(stops)-1; i++ {
		if stops[i].score <= s && s <= stops[i+1].score {
			from, to = stops[i], stops[i+1]
			break
		}
	}

	var c rgb
	switch s {
	case from.score:
		c = from.color
	case to.score:
		c = to.color
	default:
		p := (s - from.score) / (to.score - from.score)
		c = rgb{
			r: from.color.r + (to.color.r-from.color.r)*p,
			g: from.color.g + (to.color.g-from.color.g)*p,
			b: from.color.b + (to.color.b-from.color.b)*p,
		}
	}

	r, g, b := int(c.r), int(c.g), int(c.b)
	text = "white"
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 160 {
		text = "black"
	}
	return fmt.Sprintf("rgba(%d, %d, %d, 1)", r, g, b), text
}

// Labels names bars from the oldest ("5° last") to the newest ("Latest").
func Labels(n int) []string {
	if n == 0 {
		return nil
	}
	labels := make([]string, 0, n)
	for i := 0; i < n-1; i++ {
		labels = append(labels, fmt.Sprintf("%d° last", n-i))
	}
	return append(labels, "Latest")
}

// Config is a Chart.js bar chart.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label              string     `json:"label"`
	Data               []*float64 `json:"data"`
	BackgroundColor    []string   `json:"backgroundColor"`
	BorderColor        string     `json:"borderColor"`
	BorderWidth        int        `json:"borderWidth"`
	BarPercentage      float64    `json:"barPercentage"`
	CategoryPercentage float64    `json:"categoryPercentage"`
}

type Options struct {
	Title   Title          `json:"title"`
	Legend  map[string]any `json:"legend"`
	Plugins map[string]any `json:"plugins"`
	Scales  map[string]any `json:"scales"`
}

type Title struct {
	Display   bool   `json:"display"`
	Text      string `json:"text"`
	FontSize  int    `json:"fontSize"`
	FontColor string `json:"fontColor"`
}

// NewConfig builds the chart of a player's scores, oldest first.
func NewConfig(player string, scores []*float64) Config {
	bg := make([]string, len(scores))
	fg := make([]string, len(scores))
	for i, s := range scores {
		bg[i], fg[i] = Color(s)
	}

	return Config{
		Type: "bar",
		Data: Data{
			Labels: Labels(len(scores)),
			Datasets: []Dataset{{
				Label:              "SO5 Score",
				Data:               scores,
				BackgroundColor:    bg,
				BorderColor:        "rgba(0,0,0,0.3)",
				BorderWidth:        1,
				BarPercentage:      0.6,
				CategoryPercentage: 0.7,
			}},
		},
		Options: Options{
			Title:  Title{Display: true, Text: player, FontSize: 18, FontColor: "#333"},
			Legend: map[string]any{"display": false},
			Plugins: map[string]any{
				"datalabels": map[string]any{
					"anchor":    "center",
					"align":     "center",
					"color":     fg,
					"font":      map[string]any{"weight": "bold", "size": 18},
					"formatter": "(value) => { return value == 0 ? '❌' : Math.round(value); }",
				},
			},
			Scales: map[string]any{
				"yAxes": []any{map[string]any{
					"ticks": map[string]any{"beginAtZero": true, "max": 100, "stepSize": 20, "fontColor": "#555"},
				}},
				"xAxes": []any{map[string]any{
					"gridLines": map[string]any{"display": false},
					"ticks":     map[string]any{"fontColor": "#555"},
				}},
			},
		},
	}
}

// URL encodes cfg into a chart image URL.
func URL(cfg Config) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode chart: %w", err)
	}
	return BaseURL + url.QueryEscape(strings.TrimSpace(buf.String())), nil
}
