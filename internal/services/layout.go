package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/clients/redis"
  "github.com/vostrano/heritage-backend/internal/flow"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
)

// ComposeOptions selects the viewport and output mode for one composition.
type ComposeOptions struct {
  ViewportWidthPx float64
  ContentWidthPx  float64
  EditMode        bool
}

// ComposedPage is the full result handed to the frontend: the layout
// instance for interactive editing plus rendered HTML for direct display.
type ComposedPage struct {
  ArticleID uuid.UUID            `json:"article_id"`
  Layout    *flow.LayoutInstance `json:"layout"`
  HTML      string               `json:"html"`
}

// LayoutService composes article pages through the flow engine and manages
// the slot assignment state persisted on each article.
type LayoutService interface {
  ComposeArticle(ctx context.Context, articleID uuid.UUID, opts ComposeOptions) (*ComposedPage, error)
  ComposeArticleCached(ctx context.Context, slug string, opts ComposeOptions) (*ComposedPage, error)
  PickImage(ctx context.Context, articleID uuid.UUID, key flow.SlotKey, imageID uuid.UUID) (*ComposedPage, error)
  ResetSlot(ctx context.Context, articleID uuid.UUID, key flow.SlotKey) (*ComposedPage, error)
  OverrideCaption(ctx context.Context, articleID uuid.UUID, slotID, caption string) (*ComposedPage, error)
  RevertCaption(ctx context.Context, articleID uuid.UUID, slotID string) (*ComposedPage, error)
}

type layoutService struct {
  db          *gorm.DB
  log         *logger.Logger
  articleRepo repos.ArticleRepo
  galleryRepo repos.GalleryImageRepo
  templateRepo repos.PageTemplateRepo
  catalog     flow.Catalog
  pageCache   redis.PageCache
  cacheTTL    time.Duration
}

func NewLayoutService(
  db *gorm.DB,
  log *logger.Logger,
  articleRepo repos.ArticleRepo,
  galleryRepo repos.GalleryImageRepo,
  templateRepo repos.PageTemplateRepo,
  catalog flow.Catalog,
  pageCache redis.PageCache,
) LayoutService {
  serviceLog := log.With("service", "LayoutService")
  if catalog == nil {
    catalog = flow.DefaultCatalog()
  }
  ttl := 10 * time.Minute
  if v := strings.TrimSpace(os.Getenv("PAGE_CACHE_TTL_SECONDS")); v != "" {
    if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
      ttl = time.Duration(parsed) * time.Second
    }
  }
  return &layoutService{
    db:           db,
    log:          serviceLog,
    articleRepo:  articleRepo,
    galleryRepo:  galleryRepo,
    templateRepo: templateRepo,
    catalog:      catalog,
    pageCache:    pageCache,
    cacheTTL:     ttl,
  }
}

func (ls *layoutService) loadArticle(ctx context.Context, articleID uuid.UUID) (*types.Article, error) {
  found, err := ls.articleRepo.GetByIDs(ctx, nil, []uuid.UUID{articleID})
  if err != nil {
    return nil, fmt.Errorf("failed to load article: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("article %s not found", articleID)
  }
  return found[0], nil
}

// flowTemplate converts a stored page template row into the engine's
// template value.
func (ls *layoutService) flowTemplate(ctx context.Context, article *types.Article) (flow.Template, error) {
  if article.TemplateID == nil {
    return flow.Template{}, fmt.Errorf("article %s has no template assigned", article.ID)
  }
  rows, err := ls.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{*article.TemplateID})
  if err != nil {
    return flow.Template{}, fmt.Errorf("failed to load template: %w", err)
  }
  if len(rows) == 0 {
    return flow.Template{}, fmt.Errorf("template %s not found", *article.TemplateID)
  }
  sections, pErr := ParseTemplateSections(rows[0])
  if pErr != nil {
    return flow.Template{}, pErr
  }
  return flow.Template{
    ID:       rows[0].ID.String(),
    Sections: sections,
  }, nil
}

// storedAssignment is the persisted shape of one slot pick. Only the image
// reference and caption override live in the database; display fields are
// rehydrated from the gallery row at compose time.
type storedAssignment struct {
  SlotID          string     `json:"slot_id"`
  ImageID         *uuid.UUID `json:"image_id,omitempty"`
  CaptionOverride *string    `json:"caption_override,omitempty"`
}

func decodeAssignments(article *types.Article) (map[flow.SlotKey]storedAssignment, error) {
  stored := map[flow.SlotKey]storedAssignment{}
  if len(article.SlotAssignments) == 0 {
    return stored, nil
  }
  if err := json.Unmarshal(article.SlotAssignments, &stored); err != nil {
    return nil, fmt.Errorf("decode slot assignments: %w", err)
  }
  return stored, nil
}

func encodeAssignments(stored map[flow.SlotKey]storedAssignment) (datatypes.JSON, error) {
  raw, err := json.Marshal(stored)
  if err != nil {
    return nil, fmt.Errorf("encode slot assignments: %w", err)
  }
  return datatypes.JSON(raw), nil
}

// hydrateAssignments joins the persisted picks against the site gallery so
// the engine sees current URLs, captions, and aspect ratios.
func (ls *layoutService) hydrateAssignments(ctx context.Context, article *types.Article, stored map[flow.SlotKey]storedAssignment) (flow.Assignments, error) {
  picked := flow.Assignments{}
  if len(stored) == 0 {
    return picked, nil
  }

  imageIDs := make([]uuid.UUID, 0, len(stored))
  for _, sa := range stored {
    if sa.ImageID != nil {
      imageIDs = append(imageIDs, *sa.ImageID)
    }
  }
  images, err := ls.galleryRepo.GetByIDs(ctx, nil, imageIDs)
  if err != nil {
    return nil, fmt.Errorf("failed to load picked images: %w", err)
  }
  byID := make(map[uuid.UUID]*types.GalleryImage, len(images))
  for _, img := range images {
    byID[img.ID] = img
  }

  for key, sa := range stored {
    slot := flow.ImageSlot{SlotID: sa.SlotID}
    if sa.ImageID != nil {
      img, ok := byID[*sa.ImageID]
      if !ok {
        // Image was deleted since the pick; leave the slot empty.
        picked[key] = slot
        continue
      }
      slot.Src = img.FileURL
      slot.Alt = img.AltText
      slot.GalleryCaption = img.Caption
      if img.Width > 0 && img.Height > 0 {
        slot.AspectRatio = float64(img.Width) / float64(img.Height)
      }
    }
    if sa.CaptionOverride != nil {
      slot.Caption = *sa.CaptionOverride
    }
    picked[key] = slot
  }
  return picked, nil
}

func (ls *layoutService) compose(ctx context.Context, article *types.Article, opts ComposeOptions) (*ComposedPage, error) {
  tpl, err := ls.flowTemplate(ctx, article)
  if err != nil {
    return nil, err
  }
  stored, sErr := decodeAssignments(article)
  if sErr != nil {
    return nil, sErr
  }
  picked, hErr := ls.hydrateAssignments(ctx, article, stored)
  if hErr != nil {
    return nil, hErr
  }

  flowOpts := []flow.Option{}
  if opts.ViewportWidthPx > 0 {
    flowOpts = append(flowOpts, flow.WithViewportWidth(opts.ViewportWidthPx))
  }
  if opts.ContentWidthPx > 0 {
    flowOpts = append(flowOpts, flow.WithContentWidth(opts.ContentWidthPx))
  }

  layout, fErr := flow.Flow(article.MasterText, tpl, ls.catalog, picked, flowOpts...)
  if fErr != nil {
    return nil, fmt.Errorf("compose article %s: %w", article.ID, fErr)
  }
  for _, w := range layout.Warnings {
    ls.log.Warn("Layout warning", "article_id", article.ID, "warning", w)
  }

  renderer, rErr := flow.NewRenderer(!opts.EditMode)
  if rErr != nil {
    return nil, fmt.Errorf("build renderer: %w", rErr)
  }
  html, hErr2 := renderer.RenderHTML(layout)
  if hErr2 != nil {
    return nil, fmt.Errorf("render article %s: %w", article.ID, hErr2)
  }

  return &ComposedPage{
    ArticleID: article.ID,
    Layout:    layout,
    HTML:      html,
  }, nil
}

func (ls *layoutService) ComposeArticle(ctx context.Context, articleID uuid.UUID, opts ComposeOptions) (*ComposedPage, error) {
  article, err := ls.loadArticle(ctx, articleID)
  if err != nil {
    return nil, err
  }
  return ls.compose(ctx, article, opts)
}

// ComposeArticleCached serves the public read path. Edit mode is never
// cached; viewport width is part of the key because the height lock makes
// the composition breakpoint-dependent.
func (ls *layoutService) ComposeArticleCached(ctx context.Context, slug string, opts ComposeOptions) (*ComposedPage, error) {
  articles, err := ls.articleRepo.GetBySlugs(ctx, nil, []string{slug})
  if err != nil {
    return nil, fmt.Errorf("failed to load article: %w", err)
  }
  if len(articles) == 0 {
    return nil, fmt.Errorf("article %q not found", slug)
  }
  article := articles[0]

  if opts.EditMode || ls.pageCache == nil {
    return ls.compose(ctx, article, opts)
  }

  cacheKey := fmt.Sprintf("%s:%.0f", slug, opts.ViewportWidthPx)
  if cached, ok, gErr := ls.pageCache.Get(ctx, cacheKey); gErr == nil && ok {
    var page ComposedPage
    if uErr := json.Unmarshal([]byte(cached), &page); uErr == nil {
      return &page, nil
    }
    ls.log.Warn("Discarding undecodable cached page", "key", cacheKey)
  } else if gErr != nil {
    ls.log.Warn("Page cache read failed", "key", cacheKey, "error", gErr)
  }

  page, cErr := ls.compose(ctx, article, opts)
  if cErr != nil {
    return nil, cErr
  }
  if raw, mErr := json.Marshal(page); mErr == nil {
    if sErr := ls.pageCache.Set(ctx, cacheKey, string(raw), ls.cacheTTL); sErr != nil {
      ls.log.Warn("Page cache write failed", "key", cacheKey, "error", sErr)
    }
  }
  return page, nil
}

func (ls *layoutService) mutateAssignments(ctx context.Context, articleID uuid.UUID, mutate func(article *types.Article, stored map[flow.SlotKey]storedAssignment) error) (*ComposedPage, error) {
  article, err := ls.loadArticle(ctx, articleID)
  if err != nil {
    return nil, err
  }
  stored, sErr := decodeAssignments(article)
  if sErr != nil {
    return nil, sErr
  }
  if mErr := mutate(article, stored); mErr != nil {
    return nil, mErr
  }
  encoded, eErr := encodeAssignments(stored)
  if eErr != nil {
    return nil, eErr
  }
  article.SlotAssignments = encoded
  if uErr := ls.articleRepo.Update(ctx, nil, article); uErr != nil {
    return nil, fmt.Errorf("failed to save slot assignments: %w", uErr)
  }
  if ls.pageCache != nil {
    if iErr := ls.pageCache.InvalidatePrefix(ctx, article.Slug); iErr != nil {
      ls.log.Warn("Failed to invalidate page cache", "slug", article.Slug, "error", iErr)
    }
  }
  return ls.compose(ctx, article, ComposeOptions{EditMode: true})
}

func slotIDFromKey(key flow.SlotKey) (string, error) {
  parts := strings.Split(string(key), ":")
  if len(parts) != 3 || parts[2] == "" {
    return "", fmt.Errorf("malformed slot key %q", key)
  }
  return parts[2], nil
}

func (ls *layoutService) PickImage(ctx context.Context, articleID uuid.UUID, key flow.SlotKey, imageID uuid.UUID) (*ComposedPage, error) {
  slotID, kErr := slotIDFromKey(key)
  if kErr != nil {
    return nil, kErr
  }
  return ls.mutateAssignments(ctx, articleID, func(article *types.Article, stored map[flow.SlotKey]storedAssignment) error {
    images, iErr := ls.galleryRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
    if iErr != nil {
      return fmt.Errorf("failed to load image: %w", iErr)
    }
    if len(images) == 0 {
      return fmt.Errorf("image %s not found", imageID)
    }
    if images[0].SiteID != article.SiteID {
      return fmt.Errorf("image %s does not belong to article's site", imageID)
    }
    sa := stored[key]
    sa.SlotID = slotID
    sa.ImageID = &imageID
    stored[key] = sa
    return nil
  })
}

func (ls *layoutService) ResetSlot(ctx context.Context, articleID uuid.UUID, key flow.SlotKey) (*ComposedPage, error) {
  slotID, kErr := slotIDFromKey(key)
  if kErr != nil {
    return nil, kErr
  }
  return ls.mutateAssignments(ctx, articleID, func(article *types.Article, stored map[flow.SlotKey]storedAssignment) error {
    stored[key] = storedAssignment{SlotID: slotID}
    return nil
  })
}

// OverrideCaption patches every assignment bound to the given gallery slot
// id, mirroring the engine's SetCaptionBySlotID semantics on the persisted
// state.
func (ls *layoutService) OverrideCaption(ctx context.Context, articleID uuid.UUID, slotID, caption string) (*ComposedPage, error) {
  if strings.TrimSpace(slotID) == "" {
    return nil, fmt.Errorf("slot id required")
  }
  return ls.mutateAssignments(ctx, articleID, func(article *types.Article, stored map[flow.SlotKey]storedAssignment) error {
    touched := 0
    for key, sa := range stored {
      if sa.SlotID != slotID {
        continue
      }
      sa.CaptionOverride = &caption
      stored[key] = sa
      touched++
    }
    if touched == 0 {
      return fmt.Errorf("no assignment found for slot id %q", slotID)
    }
    return nil
  })
}

func (ls *layoutService) RevertCaption(ctx context.Context, articleID uuid.UUID, slotID string) (*ComposedPage, error) {
  if strings.TrimSpace(slotID) == "" {
    return nil, fmt.Errorf("slot id required")
  }
  return ls.mutateAssignments(ctx, articleID, func(article *types.Article, stored map[flow.SlotKey]storedAssignment) error {
    touched := 0
    for key, sa := range stored {
      if sa.SlotID != slotID {
        continue
      }
      sa.CaptionOverride = nil
      stored[key] = sa
      touched++
    }
    if touched == 0 {
      return fmt.Errorf("no assignment found for slot id %q", slotID)
    }
    return nil
  })
}
