package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
)

type ArticleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, articles []*types.Article) ([]*types.Article, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, articleIDs []uuid.UUID) ([]*types.Article, error)
  GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Article, error)
  GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Article, error)
  Update(ctx context.Context, tx *gorm.DB, article *types.Article) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, articleIDs []uuid.UUID) error
}

type articleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewArticleRepo(db *gorm.DB, baseLog *logger.Logger) ArticleRepo {
  return &articleRepo{db: db, log: baseLog.With("repo", "ArticleRepo")}
}

func (r *articleRepo) Create(ctx context.Context, tx *gorm.DB, articles []*types.Article) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(articles) == 0 {
    return []*types.Article{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&articles).Error; err != nil {
    return nil, err
  }
  return articles, nil
}

func (r *articleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, articleIDs []uuid.UUID) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Article
  if len(articleIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", articleIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *articleRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Article
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

func (r *articleRepo) GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Article
  if len(siteIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("site_id IN ?", siteIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *articleRepo) Update(ctx context.Context, tx *gorm.DB, article *types.Article) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Save(article).Error
}

func (r *articleRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, articleIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(articleIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", articleIDs).
    Delete(&types.Article{}).Error
}
