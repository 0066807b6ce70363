package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type RegionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, regions []*types.Region) ([]*types.Region, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, regionIDs []uuid.UUID) ([]*types.Region, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Region, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Region, error)
  Update(ctx context.Context, tx *gorm.DB, region *types.Region) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, regionIDs []uuid.UUID) error
}

type regionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRegionRepo(db *gorm.DB, baseLog *logger.Logger) RegionRepo {
  return &regionRepo{db: db, log: baseLog.With("repo", "RegionRepo")}
}

func (r *regionRepo) Create(ctx context.Context, tx *gorm.DB, regions []*types.Region) ([]*types.Region, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(regions) == 0 {
    return []*types.Region{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&regions).Error; err != nil {
    return nil, err
  }
  return regions, nil
}

func (r *regionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, regionIDs []uuid.UUID) ([]*types.Region, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Region
  if len(regionIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", regionIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *regionRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Region, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Region
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

func (r *regionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Region, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Region
  if err := transaction.WithContext(ctx).
    Order("sort_order ASC, name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *regionRepo) Update(ctx context.Context, tx *gorm.DB, region *types.Region) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(region).Error
}

func (r *regionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, regionIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(regionIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", regionIDs).
    Delete(&types.Region{}).Error
}
