package wordfreq

import "math"

// Spiral layout defaults.
const (
	DefaultAngleStep   = 2.4
	DefaultRadiusScale = 15.0
	DefaultMinFontSize = 10.0
	DefaultMaxFontSize = 50.0
)

// TreemapNode is one flat treemap cell. Parent is always the root ("").
type TreemapNode struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Parent string `json:"parent"`
}

// LayoutTreemap maps each ranked token to a root-level node.
func LayoutTreemap(freqs []Frequency) []TreemapNode {
	nodes := make([]TreemapNode, len(freqs))
	for i, f := range freqs {
		nodes[i] = TreemapNode{Label: f.Text, Value: f.Count}
	}
	return nodes
}

// SpiralOptions tunes LayoutSpiral. Zero fields take the defaults.
type SpiralOptions struct {
	AngleStep   float64
	RadiusScale float64
	MinFontSize float64
	MaxFontSize float64
}

func (o SpiralOptions) withDefaults() SpiralOptions {
	if o.AngleStep == 0 {
		o.AngleStep = DefaultAngleStep
	}
	if o.RadiusScale == 0 {
		o.RadiusScale = DefaultRadiusScale
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = DefaultMaxFontSize
	}
	return o
}

// LayoutPoint is one word placed on the spiral.
type LayoutPoint struct {
	Text      string  `json:"text"`
	Frequency int     `json:"frequency"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	// Normalized is the count scaled to [0,1] across the ranking.
	Normalized float64 `json:"normalized"`
	FontSize   float64 `json:"font_size"`
	// Color is the rank position i/len for gradient mapping.
	Color float64 `json:"color"`
}

// LayoutSpiral places entry i at angle i*AngleStep and radius
// sqrt(i)*RadiusScale. Font size grows linearly with normalized frequency.
// When every count is equal the normalized frequency is 0.
func LayoutSpiral(freqs []Frequency, opt SpiralOptions) []LayoutPoint {
	opt = opt.withDefaults()
	points := make([]LayoutPoint, len(freqs))
	if len(freqs) == 0 {
		return points
	}
	lo, hi := freqs[0].Count, freqs[0].Count
	for _, f := range freqs[1:] {
		lo = min(lo, f.Count)
		hi = max(hi, f.Count)
	}
	span := float64(hi - lo)
	for i, f := range freqs {
		angle := float64(i) * opt.AngleStep
		radius := math.Sqrt(float64(i)) * opt.RadiusScale
		norm := 0.0
		if span > 0 {
			norm = float64(f.Count-lo) / span
		}
		points[i] = LayoutPoint{
			Text:       f.Text,
			Frequency:  f.Count,
			X:          radius * math.Cos(angle),
			Y:          radius * math.Sin(angle),
			Normalized: norm,
			FontSize:   opt.MinFontSize + norm*(opt.MaxFontSize-opt.MinFontSize),
			Color:      float64(i) / float64(len(freqs)),
		}
	}
	return points
}
