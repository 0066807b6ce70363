package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type HeritageRecordFilter struct {
  ProvinceID *uuid.UUID
  CategoryID *uuid.UUID
  Query      string
  Limit      int
  Offset     int
}

type HeritageRecordRepo interface {
  Create(ctx context.Context, tx *gorm.DB, records []*types.HeritageRecord) ([]*types.HeritageRecord, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) ([]*types.HeritageRecord, error)
  GetByRefCodes(ctx context.Context, tx *gorm.DB, refCodes []string) ([]*types.HeritageRecord, error)
  List(ctx context.Context, tx *gorm.DB, filter HeritageRecordFilter) ([]*types.HeritageRecord, error)
  Update(ctx context.Context, tx *gorm.DB, record *types.HeritageRecord) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) error
}

type heritageRecordRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHeritageRecordRepo(db *gorm.DB, baseLog *logger.Logger) HeritageRecordRepo {
  return &heritageRecordRepo{db: db, log: baseLog.With("repo", "HeritageRecordRepo")}
}

func (r *heritageRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.HeritageRecord) ([]*types.HeritageRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(records) == 0 {
    return []*types.HeritageRecord{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
    return nil, err
  }
  return records, nil
}

func (r *heritageRecordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) ([]*types.HeritageRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.HeritageRecord
  if len(recordIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", recordIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *heritageRecordRepo) GetByRefCodes(ctx context.Context, tx *gorm.DB, refCodes []string) ([]*types.HeritageRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.HeritageRecord
  if len(refCodes) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("ref_code IN ?", refCodes).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *heritageRecordRepo) List(ctx context.Context, tx *gorm.DB, filter HeritageRecordFilter) ([]*types.HeritageRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  q := transaction.WithContext(ctx).Model(&types.HeritageRecord{})
  if filter.ProvinceID != nil {
    q = q.Where("province_id = ?", *filter.ProvinceID)
  }
  if filter.CategoryID != nil {
    q = q.Where("category_id = ?", *filter.CategoryID)
  }
  if filter.Query != "" {
    q = q.Where("name ILIKE ? OR ref_code ILIKE ?", "%"+filter.Query+"%", "%"+filter.Query+"%")
  }
  if filter.Limit > 0 {
    q = q.Limit(filter.Limit)
  }
  if filter.Offset > 0 {
    q = q.Offset(filter.Offset)
  }
  var results []*types.HeritageRecord
  if err := q.Order("ref_code ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *heritageRecordRepo) Update(ctx context.Context, tx *gorm.DB, record *types.HeritageRecord) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(record).Error
}

func (r *heritageRecordRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(recordIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", recordIDs).
    Delete(&types.HeritageRecord{}).Error
}
