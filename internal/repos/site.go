package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type SiteFilter struct {
  ProvinceID    *uuid.UUID
  CategoryID    *uuid.UUID
  PublishedOnly bool
  Limit         int
  Offset        int
}

type SiteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sites []*types.Site) ([]*types.Site, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Site, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Site, error)
  List(ctx context.Context, tx *gorm.DB, filter SiteFilter) ([]*types.Site, error)
  Update(ctx context.Context, tx *gorm.DB, site *types.Site) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) error
}

type siteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSiteRepo(db *gorm.DB, baseLog *logger.Logger) SiteRepo {
  return &siteRepo{db: db, log: baseLog.With("repo", "SiteRepo")}
}

func (r *siteRepo) Create(ctx context.Context, tx *gorm.DB, sites []*types.Site) ([]*types.Site, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(sites) == 0 {
    return []*types.Site{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&sites).Error; err != nil {
    return nil, err
  }
  return sites, nil
}

func (r *siteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Site, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Site
  if len(siteIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", siteIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *siteRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Site, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Site
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

func (r *siteRepo) List(ctx context.Context, tx *gorm.DB, filter SiteFilter) ([]*types.Site, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  q := transaction.WithContext(ctx).Model(&types.Site{})
  if filter.ProvinceID != nil {
    q = q.Where("province_id = ?", *filter.ProvinceID)
  }
  if filter.CategoryID != nil {
    q = q.Where("category_id = ?", *filter.CategoryID)
  }
  if filter.PublishedOnly {
    q = q.Where("published = ?", true)
  }
  if filter.Limit > 0 {
    q = q.Limit(filter.Limit)
  }
  if filter.Offset > 0 {
    q = q.Offset(filter.Offset)
  }
  var results []*types.Site
  if err := q.Order("name ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *siteRepo) Update(ctx context.Context, tx *gorm.DB, site *types.Site) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(site).Error
}

func (r *siteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(siteIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", siteIDs).
    Delete(&types.Site{}).Error
}
