package table

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoadSourceURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data.csv":
			_, _ = w.Write([]byte("institution,Post\npromart,hola mundo\n"))
		default:
			http.Error(w, "missing", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	d, err := LoadSource(context.Background(), srv.URL+"/data.csv", LoadOptions{}, time.Second)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if d.Len() != 1 || d.Value(0, "Post").Text() != "hola mundo" {
		t.Fatalf("rows = %v", d.Rows())
	}

	_, err = LoadSource(context.Background(), srv.URL+"/gone.csv", LoadOptions{}, time.Second)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com/a.csv") || IsURL("data/a.csv") {
		t.Fatal("IsURL misclassified")
	}
}
