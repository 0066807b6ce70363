package services

import (
  "context"
  "encoding/json"
  "fmt"
  "sort"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/clients/biblio"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
)

const (
  StyleAPA     = "apa"
  StyleChicago = "chicago"
  StyleMLA     = "mla"
)

// FormattedCitation pairs a stored citation with its rendered reference line.
type FormattedCitation struct {
  Citation *types.Citation `json:"citation"`
  Text     string          `json:"text"`
}

type BibliographyService interface {
  AddCitation(ctx context.Context, citation *types.Citation) (*types.Citation, error)
  ResolveDOI(ctx context.Context, siteID *uuid.UUID, doi string) (*types.Citation, error)
  ResolveISBN(ctx context.Context, siteID *uuid.UUID, isbn string) (*types.Citation, error)
  ListBySite(ctx context.Context, siteID uuid.UUID) ([]*types.Citation, error)
  UpdateCitation(ctx context.Context, citation *types.Citation) (*types.Citation, error)
  DeleteCitation(ctx context.Context, citationID uuid.UUID) error
  RenderBibliography(ctx context.Context, siteID uuid.UUID, style string) ([]FormattedCitation, error)
}

type bibliographyService struct {
  db           *gorm.DB
  log          *logger.Logger
  citationRepo repos.CitationRepo
  crossRef     biblio.CrossRef
  openLibrary  biblio.OpenLibrary
}

func NewBibliographyService(
  db *gorm.DB,
  log *logger.Logger,
  citationRepo repos.CitationRepo,
  crossRef biblio.CrossRef,
  openLibrary biblio.OpenLibrary,
) BibliographyService {
  serviceLog := log.With("service", "BibliographyService")
  return &bibliographyService{
    db:           db,
    log:          serviceLog,
    citationRepo: citationRepo,
    crossRef:     crossRef,
    openLibrary:  openLibrary,
  }
}

func (bs *bibliographyService) AddCitation(ctx context.Context, citation *types.Citation) (*types.Citation, error) {
  citation.Title = strings.TrimSpace(citation.Title)
  if citation.Title == "" {
    return nil, fmt.Errorf("citation title required")
  }
  if citation.Kind == "" {
    citation.Kind = "book"
  }
  citation.ID = uuid.New()
  created, err := bs.citationRepo.Create(ctx, nil, []*types.Citation{citation})
  if err != nil {
    return nil, fmt.Errorf("failed to create citation: %w", err)
  }
  return created[0], nil
}

func referenceToCitation(ref *biblio.Reference, siteID *uuid.UUID) (*types.Citation, error) {
  authorsJSON, err := authorsToJSON(ref.Authors)
  if err != nil {
    return nil, err
  }
  now := time.Now()
  c := &types.Citation{
    ID:             uuid.New(),
    SiteID:         siteID,
    Kind:           ref.Kind,
    DOI:            ref.DOI,
    ISBN:           ref.ISBN,
    Title:          ref.Title,
    Authors:        authorsJSON,
    ContainerTitle: ref.ContainerTitle,
    Publisher:      ref.Publisher,
    PublisherPlace: ref.PublisherPlace,
    Year:           ref.Year,
    Volume:         ref.Volume,
    Issue:          ref.Issue,
    Pages:          ref.Pages,
    URL:            ref.URL,
    AccessedAt:     &now,
  }
  if len(ref.Raw) > 0 {
    c.CSL = datatypes.JSON(ref.Raw)
  }
  return c, nil
}

func authorsToJSON(authors []biblio.Author) (datatypes.JSON, error) {
  if len(authors) == 0 {
    return datatypes.JSON([]byte("[]")), nil
  }
  var b strings.Builder
  b.WriteString("[")
  for i, a := range authors {
    if i > 0 {
      b.WriteString(",")
    }
    b.WriteString(fmt.Sprintf(`{"family":%q,"given":%q}`, a.Family, a.Given))
  }
  b.WriteString("]")
  return datatypes.JSON([]byte(b.String())), nil
}

func (bs *bibliographyService) ResolveDOI(ctx context.Context, siteID *uuid.UUID, doi string) (*types.Citation, error) {
  ref, err := bs.crossRef.LookupDOI(ctx, doi)
  if err != nil {
    return nil, err
  }
  citation, cErr := referenceToCitation(ref, siteID)
  if cErr != nil {
    return nil, cErr
  }
  created, crErr := bs.citationRepo.Create(ctx, nil, []*types.Citation{citation})
  if crErr != nil {
    return nil, fmt.Errorf("failed to store citation: %w", crErr)
  }
  return created[0], nil
}

func (bs *bibliographyService) ResolveISBN(ctx context.Context, siteID *uuid.UUID, isbn string) (*types.Citation, error) {
  ref, err := bs.openLibrary.LookupISBN(ctx, isbn)
  if err != nil {
    return nil, err
  }
  citation, cErr := referenceToCitation(ref, siteID)
  if cErr != nil {
    return nil, cErr
  }
  created, crErr := bs.citationRepo.Create(ctx, nil, []*types.Citation{citation})
  if crErr != nil {
    return nil, fmt.Errorf("failed to store citation: %w", crErr)
  }
  return created[0], nil
}

func (bs *bibliographyService) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*types.Citation, error) {
  return bs.citationRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{siteID})
}

func (bs *bibliographyService) UpdateCitation(ctx context.Context, citation *types.Citation) (*types.Citation, error) {
  if citation.ID == uuid.Nil {
    return nil, fmt.Errorf("citation id required")
  }
  if err := bs.citationRepo.Update(ctx, nil, citation); err != nil {
    return nil, fmt.Errorf("failed to update citation: %w", err)
  }
  return citation, nil
}

func (bs *bibliographyService) DeleteCitation(ctx context.Context, citationID uuid.UUID) error {
  return bs.citationRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{citationID})
}

// RenderBibliography returns the site's citations as formatted reference
// lines, sorted by first author family name then year, the way a printed
// bibliography would be.
func (bs *bibliographyService) RenderBibliography(ctx context.Context, siteID uuid.UUID, style string) ([]FormattedCitation, error) {
  style = strings.ToLower(strings.TrimSpace(style))
  switch style {
  case "", StyleAPA:
    style = StyleAPA
  case StyleChicago, StyleMLA:
  default:
    return nil, fmt.Errorf("unknown citation style %q", style)
  }

  citations, err := bs.citationRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{siteID})
  if err != nil {
    return nil, fmt.Errorf("failed to load citations: %w", err)
  }

  sort.SliceStable(citations, func(i, j int) bool {
    ai := firstAuthorFamily(citations[i])
    aj := firstAuthorFamily(citations[j])
    if ai != aj {
      return ai < aj
    }
    return citations[i].Year < citations[j].Year
  })

  out := make([]FormattedCitation, 0, len(citations))
  for _, c := range citations {
    out = append(out, FormattedCitation{
      Citation: c,
      Text:     FormatCitation(c, style),
    })
  }
  return out, nil
}

func parseAuthors(c *types.Citation) []biblio.Author {
  var authors []biblio.Author
  if len(c.Authors) == 0 {
    return authors
  }
  // Shape is controlled by authorsToJSON and the lookup clients; a decode
  // failure just yields an author-less entry.
  _ = json.Unmarshal(c.Authors, &authors)
  return authors
}

func firstAuthorFamily(c *types.Citation) string {
  authors := parseAuthors(c)
  if len(authors) == 0 {
    return strings.ToLower(c.Title)
  }
  return strings.ToLower(authors[0].Family)
}

// FormatCitation renders one citation in the requested style. The output is
// plain text; italics and hanging indents are presentation concerns.
func FormatCitation(c *types.Citation, style string) string {
  authors := parseAuthors(c)
  var b strings.Builder

  switch style {
  case StyleChicago:
    b.WriteString(joinAuthorsChicago(authors))
    if b.Len() > 0 {
      b.WriteString(". ")
    }
    b.WriteString(c.Title + ".")
    if c.ContainerTitle != "" {
      b.WriteString(" " + c.ContainerTitle)
      if c.Volume != "" {
        b.WriteString(" " + c.Volume)
      }
      if c.Issue != "" {
        b.WriteString(", no. " + c.Issue)
      }
      if c.Year > 0 {
        b.WriteString(fmt.Sprintf(" (%d)", c.Year))
      }
      if c.Pages != "" {
        b.WriteString(": " + c.Pages)
      }
      b.WriteString(".")
    } else {
      if c.PublisherPlace != "" {
        b.WriteString(" " + c.PublisherPlace + ":")
      }
      if c.Publisher != "" {
        b.WriteString(" " + c.Publisher)
        if c.Year > 0 {
          b.WriteString(fmt.Sprintf(", %d", c.Year))
        }
        b.WriteString(".")
      } else if c.Year > 0 {
        b.WriteString(fmt.Sprintf(" %d.", c.Year))
      }
    }

  case StyleMLA:
    b.WriteString(joinAuthorsMLA(authors))
    if b.Len() > 0 {
      b.WriteString(". ")
    }
    b.WriteString(c.Title + ".")
    if c.ContainerTitle != "" {
      b.WriteString(" " + c.ContainerTitle)
      if c.Volume != "" {
        b.WriteString(", vol. " + c.Volume)
      }
      if c.Issue != "" {
        b.WriteString(", no. " + c.Issue)
      }
      if c.Year > 0 {
        b.WriteString(fmt.Sprintf(", %d", c.Year))
      }
      if c.Pages != "" {
        b.WriteString(", pp. " + c.Pages)
      }
      b.WriteString(".")
    } else {
      if c.Publisher != "" {
        b.WriteString(" " + c.Publisher)
        if c.Year > 0 {
          b.WriteString(fmt.Sprintf(", %d", c.Year))
        }
        b.WriteString(".")
      } else if c.Year > 0 {
        b.WriteString(fmt.Sprintf(" %d.", c.Year))
      }
    }

  default: // APA
    b.WriteString(joinAuthorsAPA(authors))
    if c.Year > 0 {
      b.WriteString(fmt.Sprintf(" (%d).", c.Year))
    }
    b.WriteString(" " + c.Title + ".")
    if c.ContainerTitle != "" {
      b.WriteString(" " + c.ContainerTitle)
      if c.Volume != "" {
        b.WriteString(", " + c.Volume)
      }
      if c.Issue != "" {
        b.WriteString("(" + c.Issue + ")")
      }
      if c.Pages != "" {
        b.WriteString(", " + c.Pages)
      }
      b.WriteString(".")
    } else if c.Publisher != "" {
      b.WriteString(" " + c.Publisher + ".")
    }
    if c.DOI != "" {
      b.WriteString(" https://doi.org/" + c.DOI)
    }
  }

  return strings.TrimSpace(b.String())
}

func joinAuthorsAPA(authors []biblio.Author) string {
  parts := make([]string, 0, len(authors))
  for _, a := range authors {
    name := a.Family
    if a.Given != "" {
      name += ", " + initialsOf(a.Given)
    }
    parts = append(parts, name)
  }
  switch len(parts) {
  case 0:
    return ""
  case 1:
    return parts[0] + "."
  default:
    return strings.Join(parts[:len(parts)-1], ", ") + ", & " + parts[len(parts)-1] + "."
  }
}

func joinAuthorsChicago(authors []biblio.Author) string {
  parts := make([]string, 0, len(authors))
  for i, a := range authors {
    if i == 0 {
      name := a.Family
      if a.Given != "" {
        name += ", " + a.Given
      }
      parts = append(parts, name)
      continue
    }
    name := a.Given
    if name != "" {
      name += " "
    }
    name += a.Family
    parts = append(parts, name)
  }
  switch len(parts) {
  case 0:
    return ""
  case 1:
    return parts[0]
  default:
    return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
  }
}

func joinAuthorsMLA(authors []biblio.Author) string {
  if len(authors) == 0 {
    return ""
  }
  first := authors[0].Family
  if authors[0].Given != "" {
    first += ", " + authors[0].Given
  }
  if len(authors) == 1 {
    return first
  }
  if len(authors) == 2 {
    second := authors[1].Given
    if second != "" {
      second += " "
    }
    second += authors[1].Family
    return first + ", and " + second
  }
  return first + ", et al"
}

func initialsOf(given string) string {
  fields := strings.Fields(given)
  parts := make([]string, 0, len(fields))
  for _, f := range fields {
    parts = append(parts, strings.ToUpper(f[:1])+".")
  }
  return strings.Join(parts, " ")
}
