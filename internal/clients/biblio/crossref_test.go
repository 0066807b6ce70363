package biblio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vostrano/heritage-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestCrossRefLookupDOI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": {
				"DOI": "10.1000/heritage.42",
				"type": "journal-article",
				"title": ["Restoration of coastal watchtowers"],
				"container-title": ["Journal of Mediterranean Heritage"],
				"publisher": "Heritage Press",
				"volume": "12",
				"issue": "3",
				"page": "201-224",
				"URL": "https://doi.org/10.1000/heritage.42",
				"author": [{"family":"Rossi","given":"Maria"}],
				"issued": {"date-parts": [[2019, 6]]}
			}
		}`))
	}))
	defer srv.Close()
	t.Setenv("CROSSREF_BASE_URL", srv.URL)

	client, err := NewCrossRef(testLogger(t))
	if err != nil {
		t.Fatalf("NewCrossRef: %v", err)
	}

	ref, err := client.LookupDOI(context.Background(), "https://doi.org/10.1000/heritage.42")
	if err != nil {
		t.Fatalf("LookupDOI: %v", err)
	}
	if ref.Kind != "article-journal" {
		t.Fatalf("unexpected kind: %q", ref.Kind)
	}
	if ref.Title != "Restoration of coastal watchtowers" {
		t.Fatalf("unexpected title: %q", ref.Title)
	}
	if ref.ContainerTitle != "Journal of Mediterranean Heritage" {
		t.Fatalf("unexpected container title: %q", ref.ContainerTitle)
	}
	if ref.Year != 2019 {
		t.Fatalf("unexpected year: %d", ref.Year)
	}
	if len(ref.Authors) != 1 || ref.Authors[0].Family != "Rossi" {
		t.Fatalf("unexpected authors: %+v", ref.Authors)
	}
	if len(ref.Raw) == 0 {
		t.Fatalf("raw payload not preserved")
	}
}

func TestCrossRefLookupDOIEmpty(t *testing.T) {
	client, err := NewCrossRef(testLogger(t))
	if err != nil {
		t.Fatalf("NewCrossRef: %v", err)
	}
	if _, err := client.LookupDOI(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank doi")
	}
}

func TestNormalizeDOI(t *testing.T) {
	cases := map[string]string{
		"10.1000/x":                   "10.1000/x",
		"https://doi.org/10.1000/x":   "10.1000/x",
		"http://dx.doi.org/10.1000/x": "10.1000/x",
		"doi:10.1000/x":               "10.1000/x",
		"  10.1000/x  ":               "10.1000/x",
	}
	for in, want := range cases {
		if got := normalizeDOI(in); got != want {
			t.Fatalf("normalizeDOI(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKindForCrossRefType(t *testing.T) {
	cases := map[string]string{
		"journal-article":     "article-journal",
		"book":                "book",
		"monograph":           "book",
		"edited-book":         "book",
		"book-chapter":        "chapter",
		"proceedings-article": "paper-conference",
		"something-else":      "article",
	}
	for in, want := range cases {
		if got := kindForCrossRefType(in); got != want {
			t.Fatalf("kindForCrossRefType(%q) = %q, want %q", in, got, want)
		}
	}
}
