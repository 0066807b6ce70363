package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type PageTemplateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, templates []*types.PageTemplate) ([]*types.PageTemplate, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.PageTemplate, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.PageTemplate, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.PageTemplate, error)
  Update(ctx context.Context, tx *gorm.DB, template *types.PageTemplate) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
}

type pageTemplateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPageTemplateRepo(db *gorm.DB, baseLog *logger.Logger) PageTemplateRepo {
  return &pageTemplateRepo{db: db, log: baseLog.With("repo", "PageTemplateRepo")}
}

func (r *pageTemplateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.PageTemplate) ([]*types.PageTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(templates) == 0 {
    return []*types.PageTemplate{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
    return nil, err
  }
  return templates, nil
}

func (r *pageTemplateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) ([]*types.PageTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.PageTemplate
  if len(templateIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", templateIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *pageTemplateRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.PageTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.PageTemplate
  if len(slugs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("slug IN ?", slugs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *pageTemplateRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.PageTemplate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.PageTemplate
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *pageTemplateRepo) Update(ctx context.Context, tx *gorm.DB, template *types.PageTemplate) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(template).Error
}

func (r *pageTemplateRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(templateIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", templateIDs).
    Delete(&types.PageTemplate{}).Error
}
