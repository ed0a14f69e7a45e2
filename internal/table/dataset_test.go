package table

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDatasetIsImmutable(t *testing.T) {
	src := []Row{{"a": String("x")}}
	d := New([]string{"a"}, src)
	src[0]["a"] = String("mutated")
	if got := d.Value(0, "a"); !got.Equal(String("x")) {
		t.Fatalf("dataset saw caller mutation: %v", got.Text())
	}
	r := d.Row(0)
	r["a"] = String("y")
	if got := d.Value(0, "a"); !got.Equal(String("x")) {
		t.Fatalf("dataset saw row copy mutation")
	}

	mapped, err := d.MapColumn("a", func(_ int, v Value) (Value, error) {
		return String(strings.ToUpper(v.Text())), nil
	})
	if err != nil {
		t.Fatalf("MapColumn: %v", err)
	}
	if mapped.Value(0, "a").Text() != "X" || d.Value(0, "a").Text() != "x" {
		t.Fatalf("map changed the source or failed: %q %q", mapped.Value(0, "a").Text(), d.Value(0, "a").Text())
	}
}

func TestDatasetMapStopsOnError(t *testing.T) {
	d := New([]string{"a"}, []Row{{"a": String("1")}, {"a": String("2")}})
	boom := errors.New("boom")
	_, err := d.Map(func(i int, r Row) (Row, error) {
		if i == 1 {
			return nil, boom
		}
		return r, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestDatasetDistinctAndFilter(t *testing.T) {
	d := New([]string{"inst"}, []Row{
		{"inst": String("promart")},
		{"inst": String("saga falabella")},
		{"inst": Null()},
		{"inst": String("promart")},
	})
	got := d.Distinct("inst")
	if strings.Join(got, ",") != "promart,saga falabella" {
		t.Fatalf("distinct = %v", got)
	}
	f := d.Filter(func(r Row) bool { return r.Get("inst").Text() == "promart" })
	if f.Len() != 2 || d.Len() != 4 {
		t.Fatalf("filter len = %d (src %d)", f.Len(), d.Len())
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.csv")
	content := "\ufeffinstitution,Published,keywords,Post\n" +
		"Promart,2025-07-01 10:00:00,\"['robo']\",Robo en tienda\n" +
		"  Saga   Falabella ,2025-07-02,\"['accidente', 'infraestructura']\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	d, err := LoadFile(context.Background(), path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("rows = %d, want 2", d.Len())
	}
	if cols := d.Columns(); cols[0] != "institution" || len(cols) != 4 {
		t.Fatalf("columns = %#v", cols)
	}
	if got := d.Value(0, "keywords").Text(); got != "['robo']" {
		t.Fatalf("keywords = %q", got)
	}
	if !d.Value(1, "Post").IsNull() {
		t.Fatalf("short row should pad with null, got %q", d.Value(1, "Post").Text())
	}
}

func TestLoadCSVEmptyAndMaxRows(t *testing.T) {
	d, err := ReadCSV(context.Background(), strings.NewReader(""), ',', 0)
	if err != nil || d.Len() != 0 {
		t.Fatalf("empty csv: len=%d err=%v", d.Len(), err)
	}
	d, err = ReadCSV(context.Background(), strings.NewReader("a\n1\n2\n3\n"), ',', 2)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("rows = %d, want 2", d.Len())
	}
}

func TestLoadTSVSniffsDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n1\t2\n"), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
	d, err := LoadFile(context.Background(), path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.Value(0, "b").Text() != "2" {
		t.Fatalf("b = %q", d.Value(0, "b").Text())
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.xlsx")
	f := excelize.NewFile()
	if _, err := f.NewSheet("Posts"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	rows := [][]any{
		{"institution", "Post"},
		{"Promart", "Robo en tienda"},
		{"Real Plaza", "Accidente de tránsito"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Posts", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	_ = f.Close()

	d, err := LoadFile(context.Background(), path, LoadOptions{SheetName: "posts"})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.Len() != 2 || d.Value(1, "institution").Text() != "Real Plaza" {
		t.Fatalf("unexpected xlsx rows: len=%d", d.Len())
	}
	if _, err := LoadFile(context.Background(), path, LoadOptions{SheetName: "missing"}); err == nil {
		t.Fatalf("expected missing sheet error")
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(context.Background(), path, LoadOptions{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}
