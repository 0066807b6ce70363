package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type CitationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, citations []*types.Citation) ([]*types.Citation, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, citationIDs []uuid.UUID) ([]*types.Citation, error)
  GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Citation, error)
  GetByDOIs(ctx context.Context, tx *gorm.DB, dois []string) ([]*types.Citation, error)
  Update(ctx context.Context, tx *gorm.DB, citation *types.Citation) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, citationIDs []uuid.UUID) error
}

type citationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCitationRepo(db *gorm.DB, baseLog *logger.Logger) CitationRepo {
  return &citationRepo{db: db, log: baseLog.With("repo", "CitationRepo")}
}

func (r *citationRepo) Create(ctx context.Context, tx *gorm.DB, citations []*types.Citation) ([]*types.Citation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(citations) == 0 {
    return []*types.Citation{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&citations).Error; err != nil {
    return nil, err
  }
  return citations, nil
}

func (r *citationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, citationIDs []uuid.UUID) ([]*types.Citation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Citation
  if len(citationIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", citationIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *citationRepo) GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Citation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Citation
  if len(siteIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("site_id IN ?", siteIDs).
    Order("sort_order ASC, created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *citationRepo) GetByDOIs(ctx context.Context, tx *gorm.DB, dois []string) ([]*types.Citation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Citation
  if len(dois) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("doi IN ?", dois).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *citationRepo) Update(ctx context.Context, tx *gorm.DB, citation *types.Citation) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(citation).Error
}

func (r *citationRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, citationIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(citationIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", citationIDs).
    Delete(&types.Citation{}).Error
}
