package services

import (
	"strings"
	"testing"

	"github.com/vostrano/heritage-backend/internal/types"
	"gorm.io/datatypes"
)

func journalCitation() *types.Citation {
	return &types.Citation{
		Kind:           "article-journal",
		DOI:            "10.1000/heritage.42",
		Title:          "Restoration of coastal watchtowers",
		Authors:        datatypes.JSON([]byte(`[{"family":"Rossi","given":"Maria"},{"family":"Bianchi","given":"Luca"}]`)),
		ContainerTitle: "Journal of Mediterranean Heritage",
		Year:           2019,
		Volume:         "12",
		Issue:          "3",
		Pages:          "201-224",
	}
}

func bookCitation() *types.Citation {
	return &types.Citation{
		Kind:           "book",
		Title:          "Stone and Salt",
		Authors:        datatypes.JSON([]byte(`[{"family":"Esposito","given":"Anna"}]`)),
		Publisher:      "Editrice Partenope",
		PublisherPlace: "Naples",
		Year:           2008,
	}
}

func TestFormatCitationAPA(t *testing.T) {
	got := FormatCitation(journalCitation(), StyleAPA)
	for _, want := range []string{
		"Rossi, M.",
		"& Bianchi, L.",
		"(2019).",
		"Restoration of coastal watchtowers.",
		"Journal of Mediterranean Heritage, 12(3), 201-224.",
		"https://doi.org/10.1000/heritage.42",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("APA citation missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCitationChicago(t *testing.T) {
	got := FormatCitation(journalCitation(), StyleChicago)
	for _, want := range []string{
		"Journal of Mediterranean Heritage 12, no. 3 (2019): 201-224.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Chicago citation missing %q:\n%s", want, got)
		}
	}

	book := FormatCitation(bookCitation(), StyleChicago)
	if !strings.Contains(book, "Naples: Editrice Partenope, 2008.") {
		t.Fatalf("Chicago book citation missing imprint:\n%s", book)
	}
}

func TestFormatCitationMLA(t *testing.T) {
	got := FormatCitation(journalCitation(), StyleMLA)
	for _, want := range []string{
		"vol. 12",
		"no. 3",
		"pp. 201-224",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("MLA citation missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCitationNoAuthors(t *testing.T) {
	c := &types.Citation{Title: "Anonymous chronicle", Year: 1502}
	got := FormatCitation(c, StyleAPA)
	if !strings.Contains(got, "Anonymous chronicle.") {
		t.Fatalf("expected title in output, got:\n%s", got)
	}
}

func TestParseAuthorsBadJSON(t *testing.T) {
	c := &types.Citation{Authors: datatypes.JSON([]byte("not json"))}
	if got := parseAuthors(c); len(got) != 0 {
		t.Fatalf("expected no authors for invalid JSON, got %d", len(got))
	}
}
