package biblio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/vostrano/heritage-backend/internal/logger"
)

// CrossRef resolves a DOI to a normalized reference via api.crossref.org.
type CrossRef interface {
	LookupDOI(ctx context.Context, doi string) (*Reference, error)
}

type crossRef struct {
	getter  *httpGetter
	baseURL string
}

func NewCrossRef(log *logger.Logger) (CrossRef, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimSpace(os.Getenv("CROSSREF_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.crossref.org"
	}
	return &crossRef{
		getter:  newHTTPGetter(log, "CrossRefClient"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type crossRefWork struct {
	Message struct {
		DOI            string     `json:"DOI"`
		Type           string     `json:"type"`
		Title          []string   `json:"title"`
		ContainerTitle []string   `json:"container-title"`
		Publisher      string     `json:"publisher"`
		PublisherPlace string     `json:"publisher-location"`
		Volume         string     `json:"volume"`
		Issue          string     `json:"issue"`
		Page           string     `json:"page"`
		URL            string     `json:"URL"`
		Author         []Author   `json:"author"`
		Issued         struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
	} `json:"message"`
}

func (c *crossRef) LookupDOI(ctx context.Context, doi string) (*Reference, error) {
	doi = normalizeDOI(doi)
	if doi == "" {
		return nil, fmt.Errorf("doi required")
	}

	var work crossRefWork
	lookupURL := c.baseURL + "/works/" + url.PathEscape(doi)
	if err := c.getter.getJSON(ctx, lookupURL, &work); err != nil {
		return nil, fmt.Errorf("crossref lookup %s: %w", doi, err)
	}

	m := work.Message
	ref := &Reference{
		Kind:           kindForCrossRefType(m.Type),
		DOI:            m.DOI,
		Publisher:      m.Publisher,
		PublisherPlace: m.PublisherPlace,
		Volume:         m.Volume,
		Issue:          m.Issue,
		Pages:          m.Page,
		URL:            m.URL,
		Authors:        m.Author,
	}
	if len(m.Title) > 0 {
		ref.Title = m.Title[0]
	}
	if len(m.ContainerTitle) > 0 {
		ref.ContainerTitle = m.ContainerTitle[0]
	}
	if len(m.Issued.DateParts) > 0 && len(m.Issued.DateParts[0]) > 0 {
		ref.Year = m.Issued.DateParts[0][0]
	}
	if ref.Title == "" {
		return nil, fmt.Errorf("crossref lookup %s: response missing title", doi)
	}
	if raw, err := json.Marshal(m); err == nil {
		ref.Raw = raw
	}
	return ref, nil
}

// normalizeDOI strips the resolver prefix and "doi:" scheme so stored DOIs
// compare equal regardless of how they were pasted in.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "https://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "http://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.TrimSpace(doi)
}

func kindForCrossRefType(t string) string {
	switch strings.TrimSpace(t) {
	case "journal-article":
		return "article-journal"
	case "book", "monograph", "edited-book":
		return "book"
	case "book-chapter":
		return "chapter"
	case "proceedings-article":
		return "paper-conference"
	default:
		return "article"
	}
}
