package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MaxWords != 50 || c.ChartKind != "treemap" || c.ColorScale != "Viridis" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Timezone != "America/Lima" || c.JoinKey != "institution" {
		t.Fatalf("unexpected cleaning defaults: %+v", c)
	}
	if len(c.TextFields) != 2 || c.Label("Post") != "Publicación" || c.Label("other") != "other" {
		t.Fatalf("text fields = %v labels = %v", c.TextFields, c.FieldLabels)
	}
	if c.DelimiterRune() != 0 {
		t.Fatalf("default delimiter should auto-detect")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wordloom.yaml")
	body := "max_words: 20\ncolor_scale: Blues\ndelimiter: ';'\ntext_fields: [Post]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORDLOOM_CHART_KIND", "scatter")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MaxWords != 20 || c.ColorScale != "Blues" || c.ChartKind != "scatter" {
		t.Fatalf("got %+v", c)
	}
	if c.DelimiterRune() != ';' || len(c.TextFields) != 1 {
		t.Fatalf("delimiter %q fields %v", c.DelimiterRune(), c.TextFields)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	c.ServerAddr = ":9000"
	c.Delimiter = "tab"
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ServerAddr != ":9000" || got.DelimiterRune() != '\t' || got.MaxWords != c.MaxWords {
		t.Fatalf("reloaded %+v", got)
	}
}
