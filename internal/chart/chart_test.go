package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/wordloom/internal/wordfreq"
)

var sample = []wordfreq.Frequency{{Text: "beta", Count: 3}, {Text: "alpha", Count: 2}}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": Treemap, "TreeMap": Treemap, "cloud": Scatter, "scatter": Scatter, " sunburst ": Sunburst} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("pie")
	assert.Error(t, err)
}

func TestBuildTreemap(t *testing.T) {
	fig, err := Build(Treemap, sample, Options{ColorScale: "Blues"})
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)

	tr := fig.Data[0]
	assert.Equal(t, "treemap", tr.Type)
	assert.Equal(t, []string{"beta", "alpha"}, tr.Labels)
	assert.Equal(t, []int{3, 2}, tr.Values)
	assert.Equal(t, []string{"", ""}, tr.Parents)
	assert.Equal(t, "Blues", tr.Marker.ColorScale)
	assert.Nil(t, fig.Layout.XAxis)
	assert.Equal(t, DefaultTitle, fig.Layout.Title.Text)

	b, err := json.Marshal(tr)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, []any{"", ""}, raw["parents"], "root parents must be serialized")
	assert.NotContains(t, raw, "x")
}

func TestBuildSunburstSharesNodes(t *testing.T) {
	fig, err := Build(Sunburst, sample, Options{})
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "sunburst", fig.Data[0].Type)
	assert.Equal(t, []string{"beta", "alpha"}, fig.Data[0].Labels)
	assert.Equal(t, DefaultColorScale, fig.Data[0].Marker.ColorScale)
}

func TestBuildScatter(t *testing.T) {
	fig, err := Build(Scatter, sample, Options{Width: 640, Height: 480})
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)

	tr := fig.Data[0]
	assert.Equal(t, "scatter", tr.Type)
	assert.Equal(t, "text", tr.Mode)
	assert.Equal(t, []string{"beta", "alpha"}, tr.Text)
	assert.Equal(t, []int{3, 2}, tr.CustomData)
	assert.Equal(t, []float64{0, 0.5}, tr.TextFont.Color)
	assert.Equal(t, []float64{wordfreq.DefaultMaxFontSize, wordfreq.DefaultMinFontSize}, tr.TextFont.Size)
	assert.InDelta(t, 0, tr.X[0], 1e-9)
	assert.Contains(t, tr.HoverTemplate, "%{customdata}")

	require.NotNil(t, fig.Layout.XAxis)
	assert.False(t, fig.Layout.XAxis.ShowTickLabels)
	assert.Equal(t, 640, fig.Layout.Width)
	assert.Equal(t, 480, fig.Layout.Height)
}

func TestBuildEmpty(t *testing.T) {
	for _, k := range Kinds {
		fig, err := Build(k, nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, fig.Data)

		b, err := json.Marshal(fig)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"data":[]`)
	}
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(Kind("pie"), sample, Options{})
	assert.Error(t, err)
}
