package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type CategoryRepo interface {
  Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Category, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
  Update(ctx context.Context, tx *gorm.DB, category *types.Category) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) error
}

type categoryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
  return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(categories) == 0 {
    return []*types.Category{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
    return nil, err
  }
  return categories, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Category
  if len(categoryIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", categoryIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *categoryRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Category
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

func (r *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Category
  if err := transaction.WithContext(ctx).
    Order("sort_order ASC, name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *categoryRepo) Update(ctx context.Context, tx *gorm.DB, category *types.Category) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(categoryIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", categoryIDs).
    Delete(&types.Category{}).Error
}
