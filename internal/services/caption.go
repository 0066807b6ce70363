package services

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "strings"
  "sync"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/clients/openai"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
  "github.com/vostrano/heritage-backend/internal/utils"
)

// CaptionBatchResult summarizes one run over the pending queue.
type CaptionBatchResult struct {
  Processed int `json:"processed"`
  Succeeded int `json:"succeeded"`
  Failed    int `json:"failed"`
}

// CaptionService drives AI captioning of gallery photos. Editors review the
// generated text before it is used; nothing here touches the manual caption.
type CaptionService interface {
  CaptionImage(ctx context.Context, imageID uuid.UUID) (*types.GalleryImage, error)
  CaptionPending(ctx context.Context, limit int) (*CaptionBatchResult, error)
  MarkPending(ctx context.Context, imageIDs []uuid.UUID) error
}

type captionService struct {
  db          *gorm.DB
  log         *logger.Logger
  galleryRepo repos.GalleryImageRepo
  siteRepo    repos.SiteRepo
  captioner   openai.Caption
  parallelism int
}

func NewCaptionService(
  db *gorm.DB,
  log *logger.Logger,
  galleryRepo repos.GalleryImageRepo,
  siteRepo repos.SiteRepo,
  captioner openai.Caption,
  parallelism int,
) CaptionService {
  serviceLog := log.With("service", "CaptionService")
  if parallelism <= 0 {
    parallelism = 4
  }
  return &captionService{
    db:          db,
    log:         serviceLog,
    galleryRepo: galleryRepo,
    siteRepo:    siteRepo,
    captioner:   captioner,
    parallelism: parallelism,
  }
}

func (cs *captionService) CaptionImage(ctx context.Context, imageID uuid.UUID) (*types.GalleryImage, error) {
  images, err := cs.galleryRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
  if err != nil {
    return nil, fmt.Errorf("failed to load image: %w", err)
  }
  if len(images) == 0 {
    return nil, fmt.Errorf("image %s not found", imageID)
  }
  img := images[0]
  if err := cs.captionOne(ctx, img); err != nil {
    return nil, err
  }
  return img, nil
}

func (cs *captionService) captionOne(ctx context.Context, img *types.GalleryImage) error {
  if cs.captioner == nil {
    return fmt.Errorf("captioning is not configured")
  }
  siteName := ""
  sites, sErr := cs.siteRepo.GetByIDs(ctx, nil, []uuid.UUID{img.SiteID})
  if sErr == nil && len(sites) > 0 {
    siteName = sites[0].Name
  }

  result, err := cs.captioner.DescribeImage(ctx, openai.CaptionRequest{
    SiteName: siteName,
    ImageURL: img.ThumbURL,
    Detail:   "low",
  })
  if err != nil {
    img.AICaptionStatus = CaptionStatusFailed
    if uErr := cs.galleryRepo.Update(ctx, nil, img); uErr != nil {
      cs.log.Warn("Failed to record caption failure", "image_id", img.ID, "error", uErr)
    }
    return fmt.Errorf("caption image %s: %w", img.ID, err)
  }

  img.AICaption = strings.TrimSpace(result.Caption)
  if strings.TrimSpace(img.AltText) == "" {
    img.AltText = strings.TrimSpace(result.AltText)
  }
  img.AICaptionStatus = CaptionStatusDone
  if uErr := cs.galleryRepo.Update(ctx, nil, img); uErr != nil {
    return fmt.Errorf("failed to store caption: %w", uErr)
  }
  return nil
}

// CaptionPending runs the queue with bounded parallelism. Individual
// failures are recorded per image and do not stop the batch.
func (cs *captionService) CaptionPending(ctx context.Context, limit int) (*CaptionBatchResult, error) {
  if limit <= 0 || limit > 100 {
    limit = 25
  }
  pending, err := cs.galleryRepo.GetByCaptionStatus(ctx, nil, CaptionStatusPending, limit)
  if err != nil {
    return nil, fmt.Errorf("failed to load pending images: %w", err)
  }

  result := &CaptionBatchResult{Processed: len(pending)}
  if len(pending) == 0 {
    return result, nil
  }

  cs.runBatch(ctx, pending, cs.parallelism, result)
  cs.log.Info("Caption batch finished",
    "processed", result.Processed,
    "succeeded", result.Succeeded,
    "failed", result.Failed,
  )
  return result, nil
}

// runBatch captions a group of images with bounded parallelism. Images the
// upstream rate-limits are collected and retried as two halves at reduced
// parallelism; a single rate-limited image is left in its failed state.
func (cs *captionService) runBatch(ctx context.Context, images []*types.GalleryImage, parallelism int, result *CaptionBatchResult) {
  if len(images) == 0 {
    return
  }
  if parallelism < 1 {
    parallelism = 1
  }

  var mu sync.Mutex
  var limited []*types.GalleryImage
  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(parallelism)
  for _, img := range images {
    img := img
    g.Go(func() error {
      cErr := cs.captionOne(gctx, img)
      if cErr == nil {
        mu.Lock()
        result.Succeeded++
        mu.Unlock()
        return nil
      }
      if isRateLimited(cErr) {
        mu.Lock()
        limited = append(limited, img)
        mu.Unlock()
        return nil
      }
      cs.log.Warn("Caption failed", "image_id", img.ID, "error", cErr)
      mu.Lock()
      result.Failed++
      mu.Unlock()
      return nil
    })
  }
  _ = g.Wait()

  if len(limited) == 0 {
    return
  }
  if len(limited) == 1 {
    cs.log.Warn("Caption rate limited, giving up", "image_id", limited[0].ID)
    result.Failed++
    return
  }
  cs.log.Warn("Caption batch rate limited, splitting",
    "limited", len(limited),
    "parallelism", parallelism/2,
  )
  half := len(limited) / 2
  cs.runBatch(ctx, limited[:half], parallelism/2, result)
  cs.runBatch(ctx, limited[half:], parallelism/2, result)
}

func isRateLimited(err error) bool {
  var coder utils.HTTPStatusCoder
  if errors.As(err, &coder) {
    return coder.HTTPStatusCode() == http.StatusTooManyRequests
  }
  return false
}

func (cs *captionService) MarkPending(ctx context.Context, imageIDs []uuid.UUID) error {
  images, err := cs.galleryRepo.GetByIDs(ctx, nil, imageIDs)
  if err != nil {
    return fmt.Errorf("failed to load images: %w", err)
  }
  return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    for _, img := range images {
      img.AICaptionStatus = CaptionStatusPending
      if uErr := cs.galleryRepo.Update(ctx, tx, img); uErr != nil {
        return fmt.Errorf("failed to mark image pending: %w", uErr)
      }
    }
    return nil
  })
}
