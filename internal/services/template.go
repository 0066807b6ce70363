package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/flow"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
)

// TemplateService manages page templates: ordered lists of section type ids
// validated against the flow catalog.
type TemplateService interface {
  CreateTemplate(ctx context.Context, template *types.PageTemplate) (*types.PageTemplate, error)
  GetTemplate(ctx context.Context, templateID uuid.UUID) (*types.PageTemplate, error)
  ListTemplates(ctx context.Context) ([]*types.PageTemplate, error)
  UpdateTemplate(ctx context.Context, template *types.PageTemplate) (*types.PageTemplate, error)
  DeleteTemplate(ctx context.Context, templateID uuid.UUID) error
  SectionCatalog() flow.Catalog
}

type templateService struct {
  db           *gorm.DB
  log          *logger.Logger
  templateRepo repos.PageTemplateRepo
  catalog      flow.Catalog
}

func NewTemplateService(db *gorm.DB, log *logger.Logger, templateRepo repos.PageTemplateRepo, catalog flow.Catalog) TemplateService {
  serviceLog := log.With("service", "TemplateService")
  if catalog == nil {
    catalog = flow.DefaultCatalog()
  }
  return &templateService{
    db:           db,
    log:          serviceLog,
    templateRepo: templateRepo,
    catalog:      catalog,
  }
}

// ParseTemplateSections decodes the stored JSON section list.
func ParseTemplateSections(template *types.PageTemplate) ([]flow.TemplateSection, error) {
  var sections []flow.TemplateSection
  if len(template.Sections) == 0 {
    return sections, nil
  }
  if err := json.Unmarshal(template.Sections, &sections); err != nil {
    return nil, fmt.Errorf("decode template sections: %w", err)
  }
  return sections, nil
}

func (ts *templateService) validateSections(template *types.PageTemplate) error {
  sections, err := ParseTemplateSections(template)
  if err != nil {
    return err
  }
  if len(sections) == 0 {
    return fmt.Errorf("template needs at least one section")
  }
  for i, sec := range sections {
    if _, ok := ts.catalog.Get(sec.SectionTypeID); !ok {
      return fmt.Errorf("section %d references unknown section type %q", i, sec.SectionTypeID)
    }
  }
  return nil
}

func (ts *templateService) CreateTemplate(ctx context.Context, template *types.PageTemplate) (*types.PageTemplate, error) {
  template.Name = strings.TrimSpace(template.Name)
  if template.Name == "" {
    return nil, fmt.Errorf("template name required")
  }
  if template.Slug == "" {
    template.Slug = Slugify(template.Name)
  }
  if err := ts.validateSections(template); err != nil {
    return nil, err
  }
  existing, exErr := ts.templateRepo.GetBySlugs(ctx, nil, []string{template.Slug})
  if exErr != nil {
    return nil, fmt.Errorf("failed to check template slug: %w", exErr)
  }
  if len(existing) > 0 {
    return nil, fmt.Errorf("template slug %q already in use", template.Slug)
  }
  template.ID = uuid.New()
  if template.Version <= 0 {
    template.Version = 1
  }
  created, err := ts.templateRepo.Create(ctx, nil, []*types.PageTemplate{template})
  if err != nil {
    return nil, fmt.Errorf("failed to create template: %w", err)
  }
  return created[0], nil
}

func (ts *templateService) GetTemplate(ctx context.Context, templateID uuid.UUID) (*types.PageTemplate, error) {
  found, err := ts.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{templateID})
  if err != nil {
    return nil, fmt.Errorf("failed to load template: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("template %s not found", templateID)
  }
  return found[0], nil
}

func (ts *templateService) ListTemplates(ctx context.Context) ([]*types.PageTemplate, error) {
  return ts.templateRepo.List(ctx, nil)
}

func (ts *templateService) UpdateTemplate(ctx context.Context, template *types.PageTemplate) (*types.PageTemplate, error) {
  if template.ID == uuid.Nil {
    return nil, fmt.Errorf("template id required")
  }
  if err := ts.validateSections(template); err != nil {
    return nil, err
  }
  prev, err := ts.GetTemplate(ctx, template.ID)
  if err != nil {
    return nil, err
  }
  template.Version = prev.Version + 1
  if uErr := ts.templateRepo.Update(ctx, nil, template); uErr != nil {
    return nil, fmt.Errorf("failed to update template: %w", uErr)
  }
  return template, nil
}

func (ts *templateService) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
  return ts.templateRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{templateID})
}

func (ts *templateService) SectionCatalog() flow.Catalog {
  return ts.catalog
}
