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

// SiteDetail bundles everything the public site page needs in one load.
type SiteDetail struct {
  Site      *types.Site           `json:"site"`
  Gallery   []*types.GalleryImage `json:"gallery"`
  Articles  []*types.Article      `json:"articles"`
  Citations []*types.Citation     `json:"citations"`
}

type SiteService interface {
  CreateSite(ctx context.Context, site *types.Site) (*types.Site, error)
  GetSite(ctx context.Context, siteID uuid.UUID) (*types.Site, error)
  GetSiteBySlug(ctx context.Context, slug string) (*types.Site, error)
  GetSiteDetail(ctx context.Context, slug string, publishedOnly bool) (*SiteDetail, error)
  ListSites(ctx context.Context, filter repos.SiteFilter) ([]*types.Site, error)
  UpdateSite(ctx context.Context, site *types.Site) (*types.Site, error)
  SetPublished(ctx context.Context, siteID uuid.UUID, published bool) (*types.Site, error)
  SetCoverImage(ctx context.Context, siteID uuid.UUID, imageID uuid.UUID) (*types.Site, error)
  DeleteSite(ctx context.Context, siteID uuid.UUID) error
}

type siteService struct {
  db           *gorm.DB
  log          *logger.Logger
  siteRepo     repos.SiteRepo
  galleryRepo  repos.GalleryImageRepo
  articleRepo  repos.ArticleRepo
  citationRepo repos.CitationRepo
  pageCache    redis.PageCache
}

func NewSiteService(
  db *gorm.DB,
  log *logger.Logger,
  siteRepo repos.SiteRepo,
  galleryRepo repos.GalleryImageRepo,
  articleRepo repos.ArticleRepo,
  citationRepo repos.CitationRepo,
  pageCache redis.PageCache,
) SiteService {
  serviceLog := log.With("service", "SiteService")
  return &siteService{
    db:           db,
    log:          serviceLog,
    siteRepo:     siteRepo,
    galleryRepo:  galleryRepo,
    articleRepo:  articleRepo,
    citationRepo: citationRepo,
    pageCache:    pageCache,
  }
}

func (ss *siteService) CreateSite(ctx context.Context, site *types.Site) (*types.Site, error) {
  site.Name = strings.TrimSpace(site.Name)
  if site.Name == "" {
    return nil, fmt.Errorf("site name required")
  }
  if site.ProvinceID == uuid.Nil {
    return nil, fmt.Errorf("site province id required")
  }
  if site.CategoryID == uuid.Nil {
    return nil, fmt.Errorf("site category id required")
  }
  if site.Slug == "" {
    site.Slug = Slugify(site.Name)
  }
  existing, exErr := ss.siteRepo.GetBySlugs(ctx, nil, []string{site.Slug})
  if exErr != nil {
    return nil, fmt.Errorf("failed to check site slug: %w", exErr)
  }
  if len(existing) > 0 {
    return nil, fmt.Errorf("site slug %q already in use", site.Slug)
  }
  site.ID = uuid.New()
  created, err := ss.siteRepo.Create(ctx, nil, []*types.Site{site})
  if err != nil {
    return nil, fmt.Errorf("failed to create site: %w", err)
  }
  return created[0], nil
}

func (ss *siteService) GetSite(ctx context.Context, siteID uuid.UUID) (*types.Site, error) {
  found, err := ss.siteRepo.GetByIDs(ctx, nil, []uuid.UUID{siteID})
  if err != nil {
    return nil, fmt.Errorf("failed to load site: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("site %s not found", siteID)
  }
  return found[0], nil
}

func (ss *siteService) GetSiteBySlug(ctx context.Context, slug string) (*types.Site, error) {
  found, err := ss.siteRepo.GetBySlugs(ctx, nil, []string{slug})
  if err != nil {
    return nil, fmt.Errorf("failed to load site: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("site %q not found", slug)
  }
  return found[0], nil
}

func (ss *siteService) GetSiteDetail(ctx context.Context, slug string, publishedOnly bool) (*SiteDetail, error) {
  site, err := ss.GetSiteBySlug(ctx, slug)
  if err != nil {
    return nil, err
  }
  if publishedOnly && !site.Published {
    return nil, fmt.Errorf("site %q not found", slug)
  }

  gallery, gErr := ss.galleryRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{site.ID})
  if gErr != nil {
    return nil, fmt.Errorf("failed to load gallery: %w", gErr)
  }
  articles, aErr := ss.articleRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{site.ID})
  if aErr != nil {
    return nil, fmt.Errorf("failed to load articles: %w", aErr)
  }
  if publishedOnly {
    published := articles[:0]
    for _, a := range articles {
      if a.Published {
        published = append(published, a)
      }
    }
    articles = published
  }
  citations, cErr := ss.citationRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{site.ID})
  if cErr != nil {
    return nil, fmt.Errorf("failed to load citations: %w", cErr)
  }

  return &SiteDetail{
    Site:      site,
    Gallery:   gallery,
    Articles:  articles,
    Citations: citations,
  }, nil
}

func (ss *siteService) ListSites(ctx context.Context, filter repos.SiteFilter) ([]*types.Site, error) {
  if filter.Limit <= 0 || filter.Limit > 200 {
    filter.Limit = 50
  }
  return ss.siteRepo.List(ctx, nil, filter)
}

func (ss *siteService) UpdateSite(ctx context.Context, site *types.Site) (*types.Site, error) {
  if site.ID == uuid.Nil {
    return nil, fmt.Errorf("site id required")
  }
  if site.Slug == "" {
    site.Slug = Slugify(site.Name)
  }
  if err := ss.siteRepo.Update(ctx, nil, site); err != nil {
    return nil, fmt.Errorf("failed to update site: %w", err)
  }
  ss.invalidateSitePages(ctx, site.Slug)
  return site, nil
}

func (ss *siteService) SetPublished(ctx context.Context, siteID uuid.UUID, published bool) (*types.Site, error) {
  site, err := ss.GetSite(ctx, siteID)
  if err != nil {
    return nil, err
  }
  site.Published = published
  if uErr := ss.siteRepo.Update(ctx, nil, site); uErr != nil {
    return nil, fmt.Errorf("failed to update site: %w", uErr)
  }
  ss.invalidateSitePages(ctx, site.Slug)
  return site, nil
}

func (ss *siteService) SetCoverImage(ctx context.Context, siteID uuid.UUID, imageID uuid.UUID) (*types.Site, error) {
  site, err := ss.GetSite(ctx, siteID)
  if err != nil {
    return nil, err
  }
  images, iErr := ss.galleryRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
  if iErr != nil {
    return nil, fmt.Errorf("failed to load image: %w", iErr)
  }
  if len(images) == 0 || images[0].SiteID != siteID {
    return nil, fmt.Errorf("image %s does not belong to site %s", imageID, siteID)
  }
  site.CoverImageID = &imageID
  if uErr := ss.siteRepo.Update(ctx, nil, site); uErr != nil {
    return nil, fmt.Errorf("failed to update site: %w", uErr)
  }
  ss.invalidateSitePages(ctx, site.Slug)
  return site, nil
}

func (ss *siteService) DeleteSite(ctx context.Context, siteID uuid.UUID) error {
  site, err := ss.GetSite(ctx, siteID)
  if err != nil {
    return err
  }
  err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    articles, aErr := ss.articleRepo.GetBySiteIDs(ctx, tx, []uuid.UUID{siteID})
    if aErr != nil {
      return fmt.Errorf("failed to load articles: %w", aErr)
    }
    articleIDs := make([]uuid.UUID, 0, len(articles))
    for _, a := range articles {
      articleIDs = append(articleIDs, a.ID)
    }
    if dErr := ss.articleRepo.SoftDeleteByIDs(ctx, tx, articleIDs); dErr != nil {
      return fmt.Errorf("failed to delete articles: %w", dErr)
    }
    images, gErr := ss.galleryRepo.GetBySiteIDs(ctx, tx, []uuid.UUID{siteID})
    if gErr != nil {
      return fmt.Errorf("failed to load gallery: %w", gErr)
    }
    imageIDs := make([]uuid.UUID, 0, len(images))
    for _, img := range images {
      imageIDs = append(imageIDs, img.ID)
    }
    if dErr := ss.galleryRepo.SoftDeleteByIDs(ctx, tx, imageIDs); dErr != nil {
      return fmt.Errorf("failed to delete gallery images: %w", dErr)
    }
    if dErr := ss.siteRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{siteID}); dErr != nil {
      return fmt.Errorf("failed to delete site: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return err
  }
  ss.invalidateSitePages(ctx, site.Slug)
  return nil
}

// Cache invalidation is best effort; a stale page is acceptable, a failed
// save is not.
func (ss *siteService) invalidateSitePages(ctx context.Context, slug string) {
  if ss.pageCache == nil || slug == "" {
    return
  }
  if err := ss.pageCache.InvalidatePrefix(ctx, slug); err != nil {
    ss.log.Warn("Failed to invalidate page cache", "slug", slug, "error", err)
  }
}
