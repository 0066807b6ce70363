package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type ProvinceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, provinces []*types.Province) ([]*types.Province, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, provinceIDs []uuid.UUID) ([]*types.Province, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Province, error)
  GetByRegionIDs(ctx context.Context, tx *gorm.DB, regionIDs []uuid.UUID) ([]*types.Province, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Province, error)
  Update(ctx context.Context, tx *gorm.DB, province *types.Province) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, provinceIDs []uuid.UUID) error
}

type provinceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProvinceRepo(db *gorm.DB, baseLog *logger.Logger) ProvinceRepo {
  return &provinceRepo{db: db, log: baseLog.With("repo", "ProvinceRepo")}
}

func (r *provinceRepo) Create(ctx context.Context, tx *gorm.DB, provinces []*types.Province) ([]*types.Province, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(provinces) == 0 {
    return []*types.Province{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&provinces).Error; err != nil {
    return nil, err
  }
  return provinces, nil
}

func (r *provinceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, provinceIDs []uuid.UUID) ([]*types.Province, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Province
  if len(provinceIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", provinceIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *provinceRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Province, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Province
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

func (r *provinceRepo) GetByRegionIDs(ctx context.Context, tx *gorm.DB, regionIDs []uuid.UUID) ([]*types.Province, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Province
  if len(regionIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("region_id IN ?", regionIDs).
    Order("sort_order ASC, name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *provinceRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Province, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Province
  if err := transaction.WithContext(ctx).
    Order("sort_order ASC, name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *provinceRepo) Update(ctx context.Context, tx *gorm.DB, province *types.Province) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(province).Error
}

func (r *provinceRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, provinceIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(provinceIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", provinceIDs).
    Delete(&types.Province{}).Error
}
