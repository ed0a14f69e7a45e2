package wordfreq

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/KaramelBytes/wordloom/internal/table"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("The Quick-Fox jumps!! over 2 lazy dogs.")
	want := []string{"the", "quick", "fox", "jumps", "over", "lazy", "dogs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeUnicodeAndOptions(t *testing.T) {
	got := Tokenize("Año niño, día: más")
	want := []string{"año", "niño", "día", "más"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	ascii := Tokenizer{WordChar: ASCIIWordChar, MinLen: 2}.Tokenize("Año de PRUEBA")
	if !reflect.DeepEqual(ascii, []string{"de", "prueba"}) {
		t.Fatalf("ascii Tokenize = %v", ascii)
	}
	if toks := Tokenize("   "); len(toks) != 0 {
		t.Fatalf("blank text gave %v", toks)
	}
}

func textDataset(field string, texts ...any) table.Dataset {
	rows := make([]table.Row, len(texts))
	for i, x := range texts {
		switch v := x.(type) {
		case nil:
			rows[i] = table.Row{}
		case table.Value:
			rows[i] = table.Row{field: v}
		case string:
			rows[i] = table.Row{field: table.String(v)}
		}
	}
	return table.New([]string{field}, rows)
}

func TestComputeFrequenciesEndToEnd(t *testing.T) {
	d := textDataset("main_keyword", "alpha beta", "alpha gamma", "beta beta")
	got, err := ComputeFrequencies(d, "main_keyword", 2)
	if err != nil {
		t.Fatalf("ComputeFrequencies: %v", err)
	}
	want := []Frequency{{Text: "beta", Count: 3}, {Text: "alpha", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComputeFrequenciesProperties(t *testing.T) {
	d := textDataset("Post",
		"robo robo robo en la tienda",
		nil,
		table.Null(),
		table.Number(42),
		"   ",
		"tienda cerrada por robo",
		"la policía llegó tarde a la tienda",
	)
	got, err := ComputeFrequencies(d, "Post", 4)
	if err != nil {
		t.Fatalf("ComputeFrequencies: %v", err)
	}
	if len(got) > 4 {
		t.Fatalf("len = %d", len(got))
	}
	for i, f := range got {
		if len([]rune(f.Text)) < DefaultMinLen {
			t.Fatalf("short token %q", f.Text)
		}
		if i > 0 && got[i-1].Count < f.Count {
			t.Fatalf("not sorted: %v", got)
		}
	}
	if got[0] != (Frequency{Text: "robo", Count: 4}) || got[1] != (Frequency{Text: "tienda", Count: 3}) {
		t.Fatalf("top entries = %v", got[:2])
	}
	// Count-1 ties keep first-seen order.
	if got[2].Text != "cerrada" || got[3].Text != "por" {
		t.Fatalf("tie order = %v", got[2:])
	}
}

func TestComputeFrequenciesEmptyAndInvalid(t *testing.T) {
	got, err := ComputeFrequencies(table.Dataset{}, "Post", 10)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty dataset: %v %v", got, err)
	}
	if _, err := ComputeFrequencies(textDataset("Post", "hola"), "Post", 0); !errors.Is(err, ErrInvalidMaxWords) {
		t.Fatalf("err = %v, want ErrInvalidMaxWords", err)
	}
}

func TestFilterByCategory(t *testing.T) {
	d := table.New([]string{"institution"}, []table.Row{
		{"institution": table.String("saga falabella")},
		{"institution": table.String("promart")},
		{"institution": table.String("sodimac")},
		{"institution": table.Null()},
	})

	set := FilterByCategory(d, "institution", AnyOf("saga falabella", "promart"))
	if set.Len() != 2 {
		t.Fatalf("set filter len = %d", set.Len())
	}
	for i := 0; i < set.Len(); i++ {
		if v := set.Value(i, "institution").Text(); v != "saga falabella" && v != "promart" {
			t.Fatalf("unexpected row %q", v)
		}
	}

	one := FilterByCategory(d, "institution", One("sodimac"))
	if one.Len() != 1 || one.Value(0, "institution").Text() != "sodimac" {
		t.Fatalf("single filter = %d rows", one.Len())
	}

	all := FilterByCategory(d, "institution", All())
	if !reflect.DeepEqual(all.Rows(), d.Rows()) {
		t.Fatalf("All changed contents")
	}
	// A reference-distinct copy: edits to the copy never reach d.
	edited, _ := all.MapColumn("institution", func(int, table.Value) (table.Value, error) {
		return table.String("x"), nil
	})
	if edited.Value(0, "institution").Text() != "x" || d.Value(0, "institution").Text() != "saga falabella" {
		t.Fatalf("input mutated")
	}
	if d.Len() != 4 {
		t.Fatalf("input length changed")
	}
}

func TestLayoutTreemap(t *testing.T) {
	nodes := LayoutTreemap([]Frequency{{"beta", 3}, {"alpha", 2}})
	want := []TreemapNode{{Label: "beta", Value: 3}, {Label: "alpha", Value: 2}}
	if !reflect.DeepEqual(nodes, want) {
		t.Fatalf("nodes = %v", nodes)
	}
	if len(LayoutTreemap(nil)) != 0 {
		t.Fatalf("empty input should give no nodes")
	}
}

func TestLayoutSpiralSingleEntry(t *testing.T) {
	pts := LayoutSpiral([]Frequency{{Text: "x", Count: 5}}, SpiralOptions{})
	if len(pts) != 1 {
		t.Fatalf("len = %d", len(pts))
	}
	p := pts[0]
	if p.X != 0 || p.Y != 0 || p.Normalized != 0 || p.FontSize != DefaultMinFontSize || p.Color != 0 {
		t.Fatalf("point = %+v", p)
	}
}

func TestLayoutSpiralEqualCountsNoNaN(t *testing.T) {
	pts := LayoutSpiral([]Frequency{{"a", 2}, {"b", 2}, {"c", 2}}, SpiralOptions{})
	for _, p := range pts {
		if math.IsNaN(p.Normalized) || math.IsNaN(p.FontSize) || p.Normalized != 0 {
			t.Fatalf("degenerate point = %+v", p)
		}
	}
}

func TestLayoutSpiralGeometry(t *testing.T) {
	freqs := []Frequency{{"a", 10}, {"b", 6}, {"c", 2}, {"d", 2}}
	pts := LayoutSpiral(freqs, SpiralOptions{})
	if pts[0].FontSize != DefaultMaxFontSize || pts[0].Normalized != 1 {
		t.Fatalf("top point = %+v", pts[0])
	}
	if pts[1].Normalized != 0.5 || pts[1].FontSize != 30 {
		t.Fatalf("middle point = %+v", pts[1])
	}
	r := math.Sqrt(2) * DefaultRadiusScale
	if math.Abs(pts[2].X-r*math.Cos(4.8)) > 1e-9 || math.Abs(pts[2].Y-r*math.Sin(4.8)) > 1e-9 {
		t.Fatalf("point 2 = (%f, %f)", pts[2].X, pts[2].Y)
	}
	if pts[3].Color != 0.75 {
		t.Fatalf("color = %f", pts[3].Color)
	}
	custom := LayoutSpiral(freqs, SpiralOptions{MinFontSize: 8, MaxFontSize: 12})
	if custom[0].FontSize != 12 || custom[3].FontSize != 8 {
		t.Fatalf("custom font range = %+v", custom)
	}
	if len(LayoutSpiral(nil, SpiralOptions{})) != 0 {
		t.Fatalf("empty input should give no points")
	}
}
