package biblio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenLibraryLookupISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ISBN:9788806173890": {
				"title": "Stone and Salt",
				"url": "https://openlibrary.org/books/OL1M/Stone_and_Salt",
				"authors": [{"name": "Anna Maria Esposito"}],
				"publishers": [{"name": "Editrice Partenope"}],
				"publish_places": [{"name": "Naples"}],
				"publish_date": "March 2008"
			}
		}`))
	}))
	defer srv.Close()
	t.Setenv("OPENLIBRARY_BASE_URL", srv.URL)

	client, err := NewOpenLibrary(testLogger(t))
	if err != nil {
		t.Fatalf("NewOpenLibrary: %v", err)
	}

	ref, err := client.LookupISBN(context.Background(), "978-88-06-17389-0")
	if err != nil {
		t.Fatalf("LookupISBN: %v", err)
	}
	if ref.Kind != "book" {
		t.Fatalf("unexpected kind: %q", ref.Kind)
	}
	if ref.Title != "Stone and Salt" {
		t.Fatalf("unexpected title: %q", ref.Title)
	}
	if ref.Year != 2008 {
		t.Fatalf("unexpected year: %d", ref.Year)
	}
	if len(ref.Authors) != 1 || ref.Authors[0].Family != "Esposito" || ref.Authors[0].Given != "Anna Maria" {
		t.Fatalf("unexpected authors: %+v", ref.Authors)
	}
}

func TestOpenLibraryLookupISBNNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	t.Setenv("OPENLIBRARY_BASE_URL", srv.URL)

	client, err := NewOpenLibrary(testLogger(t))
	if err != nil {
		t.Fatalf("NewOpenLibrary: %v", err)
	}
	if _, err := client.LookupISBN(context.Background(), "9788806173890"); err == nil {
		t.Fatalf("expected error for missing record")
	}
}

func TestNormalizeISBN(t *testing.T) {
	cases := map[string]string{
		"978-88-06-17389-0": "9788806173890",
		" 88 06 17389 X ":   "880617389X",
		"no digits":         "",
	}
	for in, want := range cases {
		if got := normalizeISBN(in); got != want {
			t.Fatalf("normalizeISBN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitAuthorName(t *testing.T) {
	a := splitAuthorName("Anna Maria Esposito")
	if a.Given != "Anna Maria" || a.Family != "Esposito" {
		t.Fatalf("unexpected split: %+v", a)
	}
	single := splitAuthorName("Homer")
	if single.Family != "Homer" || single.Given != "" {
		t.Fatalf("unexpected single-name split: %+v", single)
	}
}

func TestYearFromPublishDate(t *testing.T) {
	cases := map[string]int{
		"March 2008": 2008,
		"2015":       2015,
		"unknown":    0,
	}
	for in, want := range cases {
		if got := yearFromPublishDate(in); got != want {
			t.Fatalf("yearFromPublishDate(%q) = %d, want %d", in, got, want)
		}
	}
}
