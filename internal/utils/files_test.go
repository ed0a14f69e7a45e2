package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "chart.json")
	if err := SafeWriteFile(path, []byte("{}")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "{}" {
		t.Fatalf("read back %q, %v", b, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"a\": 1\n}" {
		t.Fatalf("got %q", b)
	}
	if _, err := PrettyJSON(func() {}); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, "-", []byte("hola")); err != nil || buf.String() != "hola" {
		t.Fatalf("stdout write: %q %v", buf.String(), err)
	}
	path := filepath.Join(t.TempDir(), "x.json")
	if err := WriteOutput(&buf, path, []byte("chau")); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(path); !strings.EqualFold(string(b), "chau") {
		t.Fatalf("file = %q", b)
	}
}
