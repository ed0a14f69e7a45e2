// Package chart turns ranked word frequencies into a declarative,
// Plotly-compatible figure. It never draws anything itself.
package chart

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/wordfreq"
)

// Kind selects which layout feeds the figure.
type Kind string

const (
	Treemap  Kind = "treemap"
	Scatter  Kind = "scatter"
	Sunburst Kind = "sunburst"
)

// Kinds lists the supported chart kinds, default first.
var Kinds = []Kind{Treemap, Scatter, Sunburst}

// ParseKind accepts a kind name case-insensitively. Empty means Treemap and
// "cloud" is an alias for Scatter.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "treemap":
		return Treemap, nil
	case "scatter", "cloud":
		return Scatter, nil
	case "sunburst":
		return Sunburst, nil
	}
	return "", fmt.Errorf("unknown chart kind %q (want treemap, scatter or sunburst)", s)
}

const (
	DefaultColorScale = "Viridis"
	DefaultTitle      = "Nube de palabras"
	DefaultWidth      = 800
	DefaultHeight     = 400
)

// Options carries presentation settings. Zero fields take the defaults.
type Options struct {
	Title      string
	Width      int
	Height     int
	ColorScale string
	Spiral     wordfreq.SpiralOptions
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.ColorScale == "" {
		o.ColorScale = DefaultColorScale
	}
	return o
}

// Figure is the JSON handed to the renderer.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Only the fields of its type are set.
type Trace struct {
	Type string `json:"type"`

	Labels  []string `json:"labels,omitempty"`
	Values  []int    `json:"values,omitempty"`
	Parents []string `json:"parents,omitempty"`
	Marker  *Marker  `json:"marker,omitempty"`

	X            []float64 `json:"x,omitempty"`
	Y            []float64 `json:"y,omitempty"`
	Text         []string  `json:"text,omitempty"`
	Mode         string    `json:"mode,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
	CustomData   []int     `json:"customdata,omitempty"`
	ShowLegend   *bool     `json:"showlegend,omitempty"`

	TextInfo      string    `json:"textinfo,omitempty"`
	TextFont      *TextFont `json:"textfont,omitempty"`
	HoverTemplate string    `json:"hovertemplate"`
}

// Marker colors treemap and sunburst cells.
type Marker struct {
	ColorScale string    `json:"colorscale"`
	Colors     []int     `json:"colors,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

type ColorBar struct {
	Title string `json:"title"`
}

// TextFont holds either one size for all labels or one size and color per
// point.
type TextFont struct {
	Size       any       `json:"size"`
	Color      []float64 `json:"color,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
}

type Layout struct {
	Title        Title  `json:"title"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Margin       Margin `json:"margin"`
	XAxis        *Axis  `json:"xaxis,omitempty"`
	YAxis        *Axis  `json:"yaxis,omitempty"`
	PlotBGColor  string `json:"plot_bgcolor,omitempty"`
	PaperBGColor string `json:"paper_bgcolor,omitempty"`
}

type Title struct {
	Text string `json:"text"`
	Font Font   `json:"font"`
}

type Font struct {
	Size int `json:"size"`
}

type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

type Axis struct {
	ShowGrid       bool `json:"showgrid"`
	ZeroLine       bool `json:"zeroline"`
	ShowTickLabels bool `json:"showticklabels"`
}

const (
	cellHover  = "<b>%{label}</b><br>Frequency: %{value}<extra></extra>"
	pointHover = "<b>%{text}</b><br>Frequency: %{customdata}<extra></extra>"
)

// Build lays out freqs for kind and wraps the result in a figure. Empty
// frequencies give a figure with no traces.
func Build(kind Kind, freqs []wordfreq.Frequency, opt Options) (Figure, error) {
	opt = opt.withDefaults()
	fig := Figure{Data: []Trace{}, Layout: baseLayout(opt)}
	if kind == Scatter {
		hideAxes(&fig.Layout)
	}
	if len(freqs) == 0 {
		return fig, nil
	}
	switch kind {
	case Treemap, Sunburst:
		fig.Data = append(fig.Data, hierarchyTrace(kind, wordfreq.LayoutTreemap(freqs), opt))
	case Scatter:
		fig.Data = append(fig.Data, scatterTrace(wordfreq.LayoutSpiral(freqs, opt.Spiral), opt))
	default:
		return Figure{}, fmt.Errorf("build chart: unknown kind %q", kind)
	}
	return fig, nil
}

func baseLayout(opt Options) Layout {
	return Layout{
		Title:  Title{Text: opt.Title, Font: Font{Size: 20}},
		Width:  opt.Width,
		Height: opt.Height,
		Margin: Margin{T: 50, L: 50, R: 50, B: 50},
	}
}

func hideAxes(l *Layout) {
	l.XAxis = &Axis{}
	l.YAxis = &Axis{}
	l.PlotBGColor = "rgba(0,0,0,0)"
	l.PaperBGColor = "rgba(0,0,0,0)"
}

func hierarchyTrace(kind Kind, nodes []wordfreq.TreemapNode, opt Options) Trace {
	tr := Trace{
		Type:          string(kind),
		Labels:        make([]string, len(nodes)),
		Values:        make([]int, len(nodes)),
		Parents:       make([]string, len(nodes)),
		TextInfo:      "label+value",
		TextFont:      &TextFont{Size: 16},
		HoverTemplate: cellHover,
		Marker: &Marker{
			ColorScale: opt.ColorScale,
			Colors:     make([]int, len(nodes)),
			ColorBar:   &ColorBar{Title: "Frequency"},
		},
	}
	for i, n := range nodes {
		tr.Labels[i] = n.Label
		tr.Values[i] = n.Value
		tr.Parents[i] = n.Parent
		tr.Marker.Colors[i] = n.Value
	}
	return tr
}

func scatterTrace(points []wordfreq.LayoutPoint, opt Options) Trace {
	hide := false
	tr := Trace{
		Type:          string(Scatter),
		Mode:          "text",
		TextPosition:  "middle center",
		X:             make([]float64, len(points)),
		Y:             make([]float64, len(points)),
		Text:          make([]string, len(points)),
		CustomData:    make([]int, len(points)),
		ShowLegend:    &hide,
		HoverTemplate: pointHover,
	}
	sizes := make([]float64, len(points))
	colors := make([]float64, len(points))
	for i, p := range points {
		tr.X[i] = p.X
		tr.Y[i] = p.Y
		tr.Text[i] = p.Text
		tr.CustomData[i] = p.Frequency
		sizes[i] = p.FontSize
		colors[i] = p.Color
	}
	tr.TextFont = &TextFont{Size: sizes, Color: colors, ColorScale: opt.ColorScale}
	return tr
}
