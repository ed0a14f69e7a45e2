// Package analysis summarizes a Dataset column by column for a quick look
// before building charts.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// Options controls profiling.
type Options struct {
	// Name labels the report, usually the source file name.
	Name string
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues caps the categorical top list.
	TopValues int
	// GroupBy computes per-group sizes for the given column.
	GroupBy string
	// Outliers counts numeric values with robust |z| above OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset profiling.
func DefaultOptions() Options {
	return Options{
		MaxRows:    100000,
		SampleRows: 5,
		TopValues:  8,
	}
}

// Report is a markdown-friendly profile of a dataset.
type Report struct {
	Name      string
	Rows      int
	Processed int
	Cols      []ColumnSummary
	Samples   [][]string
	Groups    []CategoryCount
	Warnings  []string
}

// ColumnSummary captures the dominant kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|datetime|bool|list|object|categorical|text|empty
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutlierThreshold float64
	// Datetime range
	Earliest string
	Latest   string
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

type CategoryCount struct {
	Value string
	Count int
}

type colAcc struct {
	kinds  map[string]int
	nonNil int
	miss   int
	// numeric stats via Welford
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
	nums []float64
	// datetime range
	first, last string
	cats        map[string]int
	exText      []string
}

// Profile walks d once and summarizes every column.
func Profile(d table.Dataset, opt Options) *Report {
	cols := d.Columns()
	rep := &Report{Name: opt.Name, Rows: d.Len()}
	if len(cols) == 0 {
		return rep
	}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	topN := opt.TopValues
	if topN <= 0 {
		topN = 8
	}

	accs := make([]*colAcc, len(cols))
	for i := range accs {
		accs[i] = &colAcc{kinds: map[string]int{}, min: math.Inf(1), max: math.Inf(-1), cats: map[string]int{}}
	}
	groups := map[string]int{}

	for i := 0; i < d.Len() && rep.Processed < maxRows; i++ {
		rep.Processed++
		if len(rep.Samples) < sampleRows {
			row := make([]string, len(cols))
			for j, c := range cols {
				row[j] = d.Value(i, c).Text()
			}
			rep.Samples = append(rep.Samples, row)
		}
		if opt.GroupBy != "" {
			key := d.Value(i, opt.GroupBy).Text()
			if key == "" {
				key = "(null)"
			}
			groups[key]++
		}
		for j, c := range cols {
			accs[j].add(d.Value(i, c))
		}
	}

	rep.Cols = make([]ColumnSummary, len(cols))
	for j, c := range cols {
		rep.Cols[j] = accs[j].summary(c, topN, opt)
	}
	if rep.Processed < rep.Rows {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", rep.Processed, rep.Rows))
	}
	if len(groups) > 0 {
		rep.Groups = sortCounts(groups, 20)
	}
	return rep
}

func (c *colAcc) add(v table.Value) {
	if v.IsNull() {
		c.miss++
		return
	}
	c.nonNil++
	switch v.Kind() {
	case table.KindNumber:
		f, _ := v.Num()
		c.addNum(f)
	case table.KindBool:
		c.kinds["bool"]++
		c.cats[v.Text()]++
	case table.KindDateTime:
		c.kinds["datetime"]++
		s := v.Text()
		// RFC 3339 in one zone sorts lexically.
		if c.first == "" || s < c.first {
			c.first = s
		}
		if s > c.last {
			c.last = s
		}
	case table.KindList:
		c.kinds["list"]++
		items, _ := v.Items()
		for _, it := range items {
			if s, ok := it.Str(); ok && len(c.cats) <= 10000 {
				c.cats[s]++
			}
		}
	case table.KindObject:
		c.kinds["object"]++
	case table.KindString:
		s, _ := v.Str()
		s = strings.TrimSpace(s)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			c.addNum(f)
			return
		}
		c.kinds["text"]++
		if len(c.cats) <= 10000 && len(s) <= 64 { // treat short tokens as categories
			c.cats[s]++
		}
		if len(c.exText) < 3 {
			c.exText = append(c.exText, s)
		}
	}
}

func (c *colAcc) addNum(x float64) {
	c.kinds["numeric"]++
	c.n++
	if x < c.min {
		c.min = x
	}
	if x > c.max {
		c.max = x
	}
	delta := x - c.mean
	c.mean += delta / float64(c.n)
	c.m2 += delta * (x - c.mean)
	c.nums = append(c.nums, x)
}

// dominant picks the most frequent kind; ties go to the earlier name.
func (c *colAcc) dominant() string {
	best, bestN := "empty", 0
	for _, k := range []string{"numeric", "datetime", "bool", "list", "object", "text"} {
		if n := c.kinds[k]; n > bestN {
			best, bestN = k, n
		}
	}
	return best
}

func (c *colAcc) summary(name string, topN int, opt Options) ColumnSummary {
	s := ColumnSummary{Name: name, NonNull: c.nonNil, Missing: c.miss}
	kind := c.dominant()
	switch kind {
	case "numeric":
		s.Min, s.Max, s.Mean = c.min, c.max, c.mean
		if c.n > 1 {
			s.Std = math.Sqrt(c.m2 / float64(c.n-1))
		}
		if opt.Outliers && len(c.nums) >= 8 {
			s.OutlierThreshold, s.OutliersCount = countOutliers(c.nums, opt.OutlierThreshold)
		}
	case "datetime":
		s.Earliest, s.Latest = c.first, c.last
	case "text":
		// Mostly repeated values read as categories.
		if len(c.cats) > 0 && len(c.cats)*2 <= c.kinds["text"] {
			kind = "categorical"
		} else {
			s.ExampleTexts = c.exText
		}
	}
	if kind == "categorical" || kind == "list" || kind == "bool" {
		s.Unique = len(c.cats)
		s.TopValues = sortCounts(c.cats, topN)
	}
	s.Kind = kind
	return s
}

func sortCounts(m map[string]int, limit int) []CategoryCount {
	out := make([]CategoryCount, 0, len(m))
	for k, v := range m {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func countOutliers(vals []float64, thr float64) (float64, int) {
	if thr <= 0 {
		thr = 3.5
	}
	median, mad := medianMAD(vals)
	if mad == 0 {
		return thr, 0
	}
	var cnt int
	for _, v := range vals {
		if math.Abs(0.6745*(v-median)/mad) > thr {
			cnt++
		}
	}
	return thr, cnt
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
