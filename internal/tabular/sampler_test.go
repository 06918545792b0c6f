// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// csvBody builds a CSV file with a header and n data rows.
func csvBody(n int) string {
	var b strings.Builder
	b.WriteString("ward,name,budget\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,Ward %d,%d\n", i+1, i+1, (i+1)*1000)
	}
	return b.String()
}

func serveCSV(t *testing.T, body string) (*Sampler, string) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return &Sampler{MaxRows: 10, HTTP: ts.Client()}, ts.URL
}

func TestSample_PreviewCappedAndCounted(t *testing.T) {
	s, url := serveCSV(t, csvBody(101))

	sample, err := s.Sample(context.Background(), url)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	if len(sample.Rows) != 10 {
		t.Errorf("len(Rows) = %d, want 10", len(sample.Rows))
	}
	if sample.TotalRows != 101 {
		t.Errorf("TotalRows = %d, want 101", sample.TotalRows)
	}
	if got := sample.Rows[0]["name"]; got != "Ward 1" {
		t.Errorf("Rows[0][name] = %q, want Ward 1", got)
	}
}

func TestSample_Columns(t *testing.T) {
	s, url := serveCSV(t, csvBody(3))

	sample, err := s.Sample(context.Background(), url)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	want := []string{"ward", "name", "budget"}
	if len(sample.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", sample.Columns, want)
	}
	for i, col := range want {
		if sample.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, want %q", i, sample.Columns[i], col)
		}
	}
	if len(sample.Rows) != 3 {
		t.Errorf("len(Rows) = %d, want 3", len(sample.Rows))
	}
	if sample.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", sample.TotalRows)
	}
}

func TestSample_NoTrailingNewline(t *testing.T) {
	s, url := serveCSV(t, "a,b\n1,2\n3,4")

	sample, err := s.Sample(context.Background(), url)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if sample.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", sample.TotalRows)
	}
}

func TestSample_HeaderOnly(t *testing.T) {
	// A file with only a header reports zero data rows.
	s, url := serveCSV(t, "a,b\n")

	sample, err := s.Sample(context.Background(), url)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(sample.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(sample.Rows))
	}
	if sample.TotalRows != 0 {
		t.Errorf("TotalRows = %d, want 0", sample.TotalRows)
	}
}

func TestSample_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	s := &Sampler{HTTP: ts.Client()}
	if _, err := s.Sample(context.Background(), ts.URL); err == nil {
		t.Fatal("Sample() error = nil, want error on HTTP 403")
	}
}

func TestSample_EmptyBody(t *testing.T) {
	s, url := serveCSV(t, "")

	if _, err := s.Sample(context.Background(), url); err == nil {
		t.Fatal("Sample() error = nil, want header read error on empty body")
	}
}

func TestSample_DefaultMaxRows(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(csvBody(25)))
	}))
	defer ts.Close()

	s := &Sampler{HTTP: ts.Client()} // MaxRows unset
	sample, err := s.Sample(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(sample.Rows) != 10 {
		t.Errorf("len(Rows) = %d, want default cap of 10", len(sample.Rows))
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty", "", 0},
		{"single line no newline", "a,b", 1},
		{"single line with newline", "a,b\n", 1},
		{"two lines", "a,b\n1,2\n", 2},
		{"trailing fragment", "a,b\n1,2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLines([]byte(tt.body)); got != tt.want {
				t.Errorf("countLines(%q) = %d, want %d", tt.body, got, tt.want)
			}
		})
	}
}
