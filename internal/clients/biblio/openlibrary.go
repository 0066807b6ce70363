package biblio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vostrano/heritage-backend/internal/logger"
)

// OpenLibrary resolves an ISBN to a normalized reference via the
// openlibrary.org books API.
type OpenLibrary interface {
	LookupISBN(ctx context.Context, isbn string) (*Reference, error)
}

type openLibrary struct {
	getter  *httpGetter
	baseURL string
}

func NewOpenLibrary(log *logger.Logger) (OpenLibrary, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimSpace(os.Getenv("OPENLIBRARY_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	return &openLibrary{
		getter:  newHTTPGetter(log, "OpenLibraryClient"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type openLibraryBook struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Authors  []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishPlaces []struct {
		Name string `json:"name"`
	} `json:"publish_places"`
	PublishDate string `json:"publish_date"`
}

func (o *openLibrary) LookupISBN(ctx context.Context, isbn string) (*Reference, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("isbn required")
	}

	bibkey := "ISBN:" + isbn
	lookupURL := o.baseURL + "/api/books?bibkeys=" + bibkey + "&format=json&jscmd=data"

	var payload map[string]json.RawMessage
	if err := o.getter.getJSON(ctx, lookupURL, &payload); err != nil {
		return nil, fmt.Errorf("openlibrary lookup %s: %w", isbn, err)
	}

	raw, ok := payload[bibkey]
	if !ok {
		return nil, fmt.Errorf("openlibrary lookup %s: no record found", isbn)
	}

	var book openLibraryBook
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, fmt.Errorf("openlibrary decode %s: %w", isbn, err)
	}
	if strings.TrimSpace(book.Title) == "" {
		return nil, fmt.Errorf("openlibrary lookup %s: response missing title", isbn)
	}

	ref := &Reference{
		Kind:  "book",
		ISBN:  isbn,
		Title: book.Title,
		URL:   book.URL,
		Year:  yearFromPublishDate(book.PublishDate),
		Raw:   raw,
	}
	for _, a := range book.Authors {
		ref.Authors = append(ref.Authors, splitAuthorName(a.Name))
	}
	if len(book.Publishers) > 0 {
		ref.Publisher = book.Publishers[0].Name
	}
	if len(book.PublishPlaces) > 0 {
		ref.PublisherPlace = book.PublishPlaces[0].Name
	}
	return ref, nil
}

func normalizeISBN(isbn string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(isbn) {
		if (r >= '0' && r <= '9') || r == 'X' || r == 'x' {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

// splitAuthorName turns "Jane van Dorn" into {Family: "Dorn", Given: "Jane van"}
// on a best-effort basis; OpenLibrary only gives display names.
func splitAuthorName(name string) Author {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return Author{Family: name}
	}
	return Author{Family: name[idx+1:], Given: name[:idx]}
}

func yearFromPublishDate(s string) int {
	fields := strings.Fields(strings.TrimSpace(s))
	for i := len(fields) - 1; i >= 0; i-- {
		f := strings.Trim(fields[i], ".,")
		if len(f) == 4 {
			if y, err := strconv.Atoi(f); err == nil && y > 1000 {
				return y
			}
		}
	}
	return 0
}
