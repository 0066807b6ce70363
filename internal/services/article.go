package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/clients/redis"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
)

type ArticleService interface {
  CreateArticle(ctx context.Context, article *types.Article) (*types.Article, error)
  GetArticle(ctx context.Context, articleID uuid.UUID) (*types.Article, error)
  GetArticleBySlug(ctx context.Context, slug string) (*types.Article, error)
  ListArticlesBySite(ctx context.Context, siteID uuid.UUID) ([]*types.Article, error)
  UpdateMasterText(ctx context.Context, articleID uuid.UUID, masterText string) (*types.Article, error)
  AssignTemplate(ctx context.Context, articleID uuid.UUID, templateID uuid.UUID) (*types.Article, error)
  UpdateArticle(ctx context.Context, article *types.Article) (*types.Article, error)
  SetPublished(ctx context.Context, articleID uuid.UUID, published bool) (*types.Article, error)
  DeleteArticle(ctx context.Context, articleID uuid.UUID) error
}

type articleService struct {
  db           *gorm.DB
  log          *logger.Logger
  articleRepo  repos.ArticleRepo
  siteRepo     repos.SiteRepo
  templateRepo repos.PageTemplateRepo
  pageCache    redis.PageCache
}

func NewArticleService(
  db *gorm.DB,
  log *logger.Logger,
  articleRepo repos.ArticleRepo,
  siteRepo repos.SiteRepo,
  templateRepo repos.PageTemplateRepo,
  pageCache redis.PageCache,
) ArticleService {
  serviceLog := log.With("service", "ArticleService")
  return &articleService{
    db:           db,
    log:          serviceLog,
    articleRepo:  articleRepo,
    siteRepo:     siteRepo,
    templateRepo: templateRepo,
    pageCache:    pageCache,
  }
}

func (s *articleService) CreateArticle(ctx context.Context, article *types.Article) (*types.Article, error) {
  article.Title = strings.TrimSpace(article.Title)
  if article.Title == "" {
    return nil, fmt.Errorf("article title required")
  }
  if article.SiteID == uuid.Nil {
    return nil, fmt.Errorf("article site id required")
  }
  sites, sErr := s.siteRepo.GetByIDs(ctx, nil, []uuid.UUID{article.SiteID})
  if sErr != nil {
    return nil, fmt.Errorf("failed to load site: %w", sErr)
  }
  if len(sites) == 0 {
    return nil, fmt.Errorf("site %s not found", article.SiteID)
  }
  if article.Slug == "" {
    article.Slug = sites[0].Slug + "-" + Slugify(article.Title)
  }
  existing, exErr := s.articleRepo.GetBySlugs(ctx, nil, []string{article.Slug})
  if exErr != nil {
    return nil, fmt.Errorf("failed to check article slug: %w", exErr)
  }
  if len(existing) > 0 {
    return nil, fmt.Errorf("article slug %q already in use", article.Slug)
  }
  if article.TemplateID != nil {
    if _, tErr := s.loadTemplate(ctx, *article.TemplateID); tErr != nil {
      return nil, tErr
    }
  }
  article.ID = uuid.New()
  created, err := s.articleRepo.Create(ctx, nil, []*types.Article{article})
  if err != nil {
    return nil, fmt.Errorf("failed to create article: %w", err)
  }
  return created[0], nil
}

func (s *articleService) GetArticle(ctx context.Context, articleID uuid.UUID) (*types.Article, error) {
  found, err := s.articleRepo.GetByIDs(ctx, nil, []uuid.UUID{articleID})
  if err != nil {
    return nil, fmt.Errorf("failed to load article: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("article %s not found", articleID)
  }
  return found[0], nil
}

func (s *articleService) GetArticleBySlug(ctx context.Context, slug string) (*types.Article, error) {
  found, err := s.articleRepo.GetBySlugs(ctx, nil, []string{slug})
  if err != nil {
    return nil, fmt.Errorf("failed to load article: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("article %q not found", slug)
  }
  return found[0], nil
}

func (s *articleService) ListArticlesBySite(ctx context.Context, siteID uuid.UUID) ([]*types.Article, error) {
  return s.articleRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{siteID})
}

func (s *articleService) UpdateMasterText(ctx context.Context, articleID uuid.UUID, masterText string) (*types.Article, error) {
  article, err := s.GetArticle(ctx, articleID)
  if err != nil {
    return nil, err
  }
  article.MasterText = masterText
  if uErr := s.articleRepo.Update(ctx, nil, article); uErr != nil {
    return nil, fmt.Errorf("failed to update article: %w", uErr)
  }
  s.invalidateArticlePages(ctx, article)
  return article, nil
}

func (s *articleService) AssignTemplate(ctx context.Context, articleID uuid.UUID, templateID uuid.UUID) (*types.Article, error) {
  article, err := s.GetArticle(ctx, articleID)
  if err != nil {
    return nil, err
  }
  if _, tErr := s.loadTemplate(ctx, templateID); tErr != nil {
    return nil, tErr
  }
  article.TemplateID = &templateID
  if uErr := s.articleRepo.Update(ctx, nil, article); uErr != nil {
    return nil, fmt.Errorf("failed to update article: %w", uErr)
  }
  s.invalidateArticlePages(ctx, article)
  return article, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, article *types.Article) (*types.Article, error) {
  if article.ID == uuid.Nil {
    return nil, fmt.Errorf("article id required")
  }
  if article.TemplateID != nil {
    if _, tErr := s.loadTemplate(ctx, *article.TemplateID); tErr != nil {
      return nil, tErr
    }
  }
  if err := s.articleRepo.Update(ctx, nil, article); err != nil {
    return nil, fmt.Errorf("failed to update article: %w", err)
  }
  s.invalidateArticlePages(ctx, article)
  return article, nil
}

func (s *articleService) SetPublished(ctx context.Context, articleID uuid.UUID, published bool) (*types.Article, error) {
  article, err := s.GetArticle(ctx, articleID)
  if err != nil {
    return nil, err
  }
  article.Published = published
  if uErr := s.articleRepo.Update(ctx, nil, article); uErr != nil {
    return nil, fmt.Errorf("failed to update article: %w", uErr)
  }
  s.invalidateArticlePages(ctx, article)
  return article, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, articleID uuid.UUID) error {
  article, err := s.GetArticle(ctx, articleID)
  if err != nil {
    return err
  }
  if dErr := s.articleRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{articleID}); dErr != nil {
    return fmt.Errorf("failed to delete article: %w", dErr)
  }
  s.invalidateArticlePages(ctx, article)
  return nil
}

func (s *articleService) loadTemplate(ctx context.Context, templateID uuid.UUID) (*types.PageTemplate, error) {
  templates, err := s.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{templateID})
  if err != nil {
    return nil, fmt.Errorf("failed to load template: %w", err)
  }
  if len(templates) == 0 {
    return nil, fmt.Errorf("template %s not found", templateID)
  }
  return templates[0], nil
}

func (s *articleService) invalidateArticlePages(ctx context.Context, article *types.Article) {
  if s.pageCache == nil {
    return
  }
  if err := s.pageCache.InvalidatePrefix(ctx, article.Slug); err != nil {
    s.log.Warn("Failed to invalidate page cache", "slug", article.Slug, "error", err)
  }
  sites, sErr := s.siteRepo.GetByIDs(ctx, nil, []uuid.UUID{article.SiteID})
  if sErr != nil || len(sites) == 0 {
    return
  }
  if err := s.pageCache.InvalidatePrefix(ctx, sites[0].Slug); err != nil {
    s.log.Warn("Failed to invalidate page cache", "slug", sites[0].Slug, "error", err)
  }
}
