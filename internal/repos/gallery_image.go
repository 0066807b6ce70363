package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type GalleryImageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, images []*types.GalleryImage) ([]*types.GalleryImage, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.GalleryImage, error)
  GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.GalleryImage, error)
  GetByCaptionStatus(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.GalleryImage, error)
  Update(ctx context.Context, tx *gorm.DB, image *types.GalleryImage) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error
}

type galleryImageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGalleryImageRepo(db *gorm.DB, baseLog *logger.Logger) GalleryImageRepo {
  return &galleryImageRepo{db: db, log: baseLog.With("repo", "GalleryImageRepo")}
}

func (r *galleryImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.GalleryImage) ([]*types.GalleryImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(images) == 0 {
    return []*types.GalleryImage{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&images).Error; err != nil {
    return nil, err
  }
  return images, nil
}

func (r *galleryImageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.GalleryImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.GalleryImage
  if len(imageIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", imageIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *galleryImageRepo) GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.GalleryImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.GalleryImage
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

func (r *galleryImageRepo) GetByCaptionStatus(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.GalleryImage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  q := transaction.WithContext(ctx).Where("ai_caption_status = ?", status)
  if limit > 0 {
    q = q.Limit(limit)
  }
  var results []*types.GalleryImage
  if err := q.Order("created_at ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *galleryImageRepo) Update(ctx context.Context, tx *gorm.DB, image *types.GalleryImage) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(image).Error
}

func (r *galleryImageRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(imageIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", imageIDs).
    Delete(&types.GalleryImage{}).Error
}

func (r *galleryImageRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(imageIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", imageIDs).
    Delete(&types.GalleryImage{}).Error
}
