// Package chart draws the dashboard charts as inline SVG and tracks the one
// live chart allowed per slot.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"familyspend/internal/core"
)

// Kind selects the chart geometry.
type Kind string

const (
	Pie           Kind = "pie"
	Doughnut      Kind = "doughnut"
	Bar           Kind = "bar"
	HorizontalBar Kind = "horizontal-bar"
)

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

// Palette holds the theme-derived colors.
type Palette struct {
	Series []string
	Bar    string
	Text   string
	Muted  string
	Grid   string
}

var (
	seriesColors = []string{
		"#4A90E2", "#5DA3E8", "#7BB5ED", "#99C7F2",
		"#5CB85C", "#6BC76B", "#7DD67D", "#90E590",
		"#F0AD4E", "#F4BD6C", "#F8CD8A", "#FCDDA8",
	}
	// CardSeries colors the card detail doughnut.
	CardSeries = []string{"#667eea", "#f093fb", "#4facfe", "#fa709a", "#30cfd0"}
)

// PaletteFor returns the colors for a theme.
func PaletteFor(theme core.Theme) Palette {
	p := Palette{Series: seriesColors, Bar: "#4A90E2"}
	if theme == core.Dark {
		p.Text, p.Muted, p.Grid = "#e8eaed", "#9aa0a6", "#3c4043"
	} else {
		p.Text, p.Muted, p.Grid = "#1f2933", "#616e7c", "#e4e7eb"
	}
	return p
}

// Config describes one chart.
type Config struct {
	Kind    Kind
	Title   string
	Points  []Point
	Palette Palette
	// FormatValue labels axis values; defaults to the plain number.
	FormatValue func(float64) string
}

var (
	ErrNoPoints     = errors.New("chart: no points")
	ErrInvalidValue = errors.New("chart: value must be finite and non-negative")
	ErrUnknownKind  = errors.New("chart: unknown kind")
	errEmptyPalette = errors.New("chart: empty palette")
)

const (
	width  = 320
	height = 240
	rowH   = 36
)

// renderable is what every go-chart chart type offers.
type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

// Render draws cfg as an SVG figure.
func Render(cfg Config) (template.HTML, error) {
	if len(cfg.Points) == 0 {
		return "", ErrNoPoints
	}
	for _, p := range cfg.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) || p.Value < 0 {
			return "", fmt.Errorf("%w: %q", ErrInvalidValue, p.Label)
		}
	}
	if cfg.FormatValue == nil {
		cfg.FormatValue = func(v float64) string { return fmt.Sprintf("%g", v) }
	}

	var (
		c   renderable
		err error
	)
	switch cfg.Kind {
	case Pie, Doughnut:
		c, err = radial(cfg)
	case Bar:
		c = bars(cfg)
	case HorizontalBar:
		c = hbars(cfg)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, cfg.Kind)
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.Render(gochart.SVG, &buf); err != nil {
		return "", fmt.Errorf("chart: render %s: %w", cfg.Kind, err)
	}
	return template.HTML(fmt.Sprintf(`<figure class="chart chart-%s" role="img" aria-label="%s">%s</figure>`,
		cfg.Kind, html.EscapeString(cfg.Title), buf.String())), nil
}

// color converts a "#rrggbb" palette entry.
func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// label escapes text for the SVG body, which the renderer writes verbatim.
func label(s string) string { return html.EscapeString(s) }

func frame() gochart.Style {
	return gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent}
}

// radial builds a pie or doughnut. Zero slices are left out since they have
// no area to draw.
func radial(cfg Config) (renderable, error) {
	if len(cfg.Palette.Series) == 0 {
		return nil, errEmptyPalette
	}
	var values []gochart.Value
	for i, p := range cfg.Points {
		if p.Value == 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: label(p.Label),
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(cfg.Palette.Series[i%len(cfg.Palette.Series)]),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontColor:   color(cfg.Palette.Text),
				FontSize:    9,
			},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoPoints
	}
	if cfg.Kind == Doughnut {
		return gochart.DonutChart{Width: width, Height: height, Background: frame(), Canvas: frame(), Values: values}, nil
	}
	return gochart.PieChart{Width: width, Height: height, Background: frame(), Canvas: frame(), Values: values}, nil
}

// peak is the axis maximum. A chart of zeros still needs a non-empty range.
func peak(points []Point) float64 {
	m := 0.0
	for _, p := range points {
		m = math.Max(m, p.Value)
	}
	if m == 0 {
		return 1
	}
	return m
}

func bars(cfg Config) renderable {
	values := make([]gochart.Value, 0, len(cfg.Points))
	for _, p := range cfg.Points {
		values = append(values, gochart.Value{
			Label: label(p.Label),
			Value: p.Value,
			Style: gochart.Style{FillColor: color(cfg.Palette.Bar), StrokeColor: color(cfg.Palette.Bar)},
		})
	}
	slot := (width - 70) / len(cfg.Points)
	return gochart.BarChart{
		Width:      width,
		Height:     height,
		BarWidth:   max(slot*3/5, 4),
		Background: gochart.Style{FillColor: drawing.ColorTransparent, Padding: gochart.Box{Top: 16, Left: 8, Right: 8, Bottom: 8}},
		Canvas:     frame(),
		XAxis:      gochart.Style{FontColor: color(cfg.Palette.Muted), StrokeColor: color(cfg.Palette.Grid), FontSize: 9},
		YAxis: gochart.YAxis{
			Style: gochart.Style{FontColor: color(cfg.Palette.Muted), StrokeColor: color(cfg.Palette.Grid), FontSize: 9},
			Range: &gochart.ContinuousRange{Min: 0, Max: peak(cfg.Points)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return label(cfg.FormatValue(f))
				}
				return ""
			},
		},
		Bars: values,
	}
}

// hbars builds one horizontal bar per point. Stacked bars fill their whole
// length, so each carries a transparent remainder up to the peak.
func hbars(cfg Config) renderable {
	top := peak(cfg.Points)
	rows := make([]gochart.StackedBar, 0, len(cfg.Points))
	for _, p := range cfg.Points {
		rows = append(rows, gochart.StackedBar{
			Name: label(p.Label),
			Values: []gochart.Value{
				{
					Label: label(cfg.FormatValue(p.Value)),
					Value: p.Value,
					Style: gochart.Style{FillColor: color(cfg.Palette.Bar), StrokeColor: color(cfg.Palette.Bar), FontColor: color(cfg.Palette.Text), FontSize: 9},
				},
				{
					Value: top - p.Value,
					Style: gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
				},
			},
		})
	}
	return gochart.StackedBarChart{
		Width:        width,
		Height:       rowH*len(cfg.Points) + 40,
		IsHorizontal: true,
		Background:   frame(),
		Canvas:       frame(),
		XAxis:        gochart.Style{FontColor: color(cfg.Palette.Text), FontSize: 9},
		YAxis:        gochart.Style{Hidden: true},
		BarSpacing:   8,
		Bars:         rows,
	}
}
