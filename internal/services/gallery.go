package services

import (
  "bytes"
  "context"
  "fmt"
  "image"
  "image/color"
  "image/jpeg"
  "math/rand"
  "os"
  "strings"
  "time"

  _ "image/gif"
  _ "image/png"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "github.com/google/uuid"
  "golang.org/x/image/draw"
  "golang.org/x/image/font"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/clients/gcp"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
)

const (
  thumbMaxEdgePx   = 480
  placeholderSize  = 800
  placeholderFontPx = 220
)

const (
  CaptionStatusNone    = "none"
  CaptionStatusPending = "pending"
  CaptionStatusDone    = "done"
  CaptionStatusFailed  = "failed"
)

type GalleryService interface {
  UploadImage(ctx context.Context, siteID uuid.UUID, originalName, mimeType string, raw []byte) (*types.GalleryImage, error)
  ListBySite(ctx context.Context, siteID uuid.UUID) ([]*types.GalleryImage, error)
  GetImage(ctx context.Context, imageID uuid.UUID) (*types.GalleryImage, error)
  UpdateImageMeta(ctx context.Context, image *types.GalleryImage) (*types.GalleryImage, error)
  ReorderImages(ctx context.Context, siteID uuid.UUID, orderedIDs []uuid.UUID) error
  DeleteImage(ctx context.Context, imageID uuid.UUID) error
  GeneratePlaceholderTile(ctx context.Context, siteID uuid.UUID, label string) (*types.GalleryImage, error)
}

type galleryService struct {
  db            *gorm.DB
  log           *logger.Logger
  galleryRepo   repos.GalleryImageRepo
  siteRepo      repos.SiteRepo
  bucketService gcp.BucketService

  tileColors []color.NRGBA
  fontFace   font.Face
}

var defaultTileColors = []color.NRGBA{
  {R: 0x8C, G: 0x5A, B: 0x3C, A: 0xFF},
  {R: 0x4A, G: 0x6B, B: 0x5A, A: 0xFF},
  {R: 0x3C, G: 0x56, B: 0x73, A: 0xFF},
  {R: 0x73, G: 0x4A, B: 0x52, A: 0xFF},
  {R: 0x5E, G: 0x5A, B: 0x41, A: 0xFF},
}

func NewGalleryService(
  db *gorm.DB,
  log *logger.Logger,
  galleryRepo repos.GalleryImageRepo,
  siteRepo repos.SiteRepo,
  bucketService gcp.BucketService,
) (GalleryService, error) {
  serviceLog := log.With("service", "GalleryService")

  var face font.Face
  fontPath := strings.TrimSpace(os.Getenv("TILE_FONT"))
  if fontPath != "" {
    loaded, err := loadFontFace(fontPath, placeholderFontPx)
    if err != nil {
      return nil, fmt.Errorf("could not load tile font: %w", err)
    }
    face = loaded
  } else {
    serviceLog.Info("TILE_FONT not set; placeholder tiles disabled")
  }

  return &galleryService{
    db:            db,
    log:           serviceLog,
    galleryRepo:   galleryRepo,
    siteRepo:      siteRepo,
    bucketService: bucketService,
    tileColors:    defaultTileColors,
    fontFace:      face,
  }, nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
  fontBytes, err := os.ReadFile(fontPath)
  if err != nil {
    return nil, fmt.Errorf("failed to read font file: %w", err)
  }
  parsedFont, err := truetype.Parse(fontBytes)
  if err != nil {
    return nil, fmt.Errorf("failed to parse TTF: %w", err)
  }
  return truetype.NewFace(parsedFont, &truetype.Options{
    Size:    size,
    DPI:     72,
    Hinting: font.HintingNone,
  }), nil
}

func extensionForMime(mimeType string) string {
  switch strings.ToLower(strings.TrimSpace(mimeType)) {
  case "image/png":
    return "png"
  case "image/gif":
    return "gif"
  case "image/webp":
    return "webp"
  default:
    return "jpg"
  }
}

// makeThumbnail scales the image down so its longest edge is thumbMaxEdgePx,
// encoded as JPEG. Smaller images pass through at their own size.
func makeThumbnail(img image.Image) (bytes.Buffer, int, int, error) {
  var out bytes.Buffer
  b := img.Bounds()
  w := b.Dx()
  h := b.Dy()

  tw, th := w, h
  if w >= h && w > thumbMaxEdgePx {
    tw = thumbMaxEdgePx
    th = h * thumbMaxEdgePx / w
  } else if h > w && h > thumbMaxEdgePx {
    th = thumbMaxEdgePx
    tw = w * thumbMaxEdgePx / h
  }
  if th < 1 {
    th = 1
  }
  if tw < 1 {
    tw = 1
  }

  dst := image.NewRGBA(image.Rect(0, 0, tw, th))
  draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

  if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85}); err != nil {
    return out, 0, 0, fmt.Errorf("encode thumbnail: %w", err)
  }
  return out, tw, th, nil
}

func (gs *galleryService) UploadImage(ctx context.Context, siteID uuid.UUID, originalName, mimeType string, raw []byte) (*types.GalleryImage, error) {
  if len(raw) == 0 {
    return nil, fmt.Errorf("empty upload")
  }
  sites, sErr := gs.siteRepo.GetByIDs(ctx, nil, []uuid.UUID{siteID})
  if sErr != nil {
    return nil, fmt.Errorf("failed to load site: %w", sErr)
  }
  if len(sites) == 0 {
    return nil, fmt.Errorf("site %s not found", siteID)
  }

  img, _, dErr := image.Decode(bytes.NewReader(raw))
  if dErr != nil {
    return nil, fmt.Errorf("decode image: %w", dErr)
  }
  bounds := img.Bounds()

  thumbBuf, _, _, tErr := makeThumbnail(img)
  if tErr != nil {
    return nil, tErr
  }

  imageID := uuid.New()
  ext := extensionForMime(mimeType)
  storageKey := fmt.Sprintf("sites/%s/%s/original.%s", siteID, imageID, ext)
  thumbKey := fmt.Sprintf("sites/%s/%s/thumb.jpg", siteID, imageID)

  if err := gs.bucketService.UploadFile(ctx, storageKey, bytes.NewReader(raw)); err != nil {
    return nil, fmt.Errorf("failed to upload original: %w", err)
  }
  if err := gs.bucketService.UploadFile(ctx, thumbKey, bytes.NewReader(thumbBuf.Bytes())); err != nil {
    return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
  }

  existing, eErr := gs.galleryRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{siteID})
  if eErr != nil {
    return nil, fmt.Errorf("failed to load existing gallery: %w", eErr)
  }

  row := &types.GalleryImage{
    ID:              imageID,
    SiteID:          siteID,
    OriginalName:    strings.TrimSpace(originalName),
    MimeType:        mimeType,
    SizeBytes:       int64(len(raw)),
    StorageKey:      storageKey,
    ThumbKey:        thumbKey,
    FileURL:         gs.bucketService.GetPublicURL(storageKey),
    ThumbURL:        gs.bucketService.GetPublicURL(thumbKey),
    Width:           bounds.Dx(),
    Height:          bounds.Dy(),
    AICaptionStatus: CaptionStatusPending,
    SortOrder:       len(existing),
  }
  created, cErr := gs.galleryRepo.Create(ctx, nil, []*types.GalleryImage{row})
  if cErr != nil {
    return nil, fmt.Errorf("failed to create gallery image row: %w", cErr)
  }
  return created[0], nil
}

func (gs *galleryService) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*types.GalleryImage, error) {
  return gs.galleryRepo.GetBySiteIDs(ctx, nil, []uuid.UUID{siteID})
}

func (gs *galleryService) GetImage(ctx context.Context, imageID uuid.UUID) (*types.GalleryImage, error) {
  found, err := gs.galleryRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
  if err != nil {
    return nil, fmt.Errorf("failed to load image: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("image %s not found", imageID)
  }
  return found[0], nil
}

func (gs *galleryService) UpdateImageMeta(ctx context.Context, img *types.GalleryImage) (*types.GalleryImage, error) {
  if img.ID == uuid.Nil {
    return nil, fmt.Errorf("image id required")
  }
  if err := gs.galleryRepo.Update(ctx, nil, img); err != nil {
    return nil, fmt.Errorf("failed to update image: %w", err)
  }
  return img, nil
}

func (gs *galleryService) ReorderImages(ctx context.Context, siteID uuid.UUID, orderedIDs []uuid.UUID) error {
  return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    images, err := gs.galleryRepo.GetBySiteIDs(ctx, tx, []uuid.UUID{siteID})
    if err != nil {
      return fmt.Errorf("failed to load gallery: %w", err)
    }
    byID := make(map[uuid.UUID]*types.GalleryImage, len(images))
    for _, img := range images {
      byID[img.ID] = img
    }
    for pos, id := range orderedIDs {
      img, ok := byID[id]
      if !ok {
        return fmt.Errorf("image %s does not belong to site %s", id, siteID)
      }
      img.SortOrder = pos
      if uErr := gs.galleryRepo.Update(ctx, tx, img); uErr != nil {
        return fmt.Errorf("failed to update sort order: %w", uErr)
      }
    }
    return nil
  })
}

func (gs *galleryService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
  img, err := gs.GetImage(ctx, imageID)
  if err != nil {
    return err
  }
  if dErr := gs.galleryRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{imageID}); dErr != nil {
    return fmt.Errorf("failed to delete image row: %w", dErr)
  }
  prefix := fmt.Sprintf("sites/%s/%s/", img.SiteID, img.ID)
  if bErr := gs.bucketService.DeletePrefix(ctx, prefix); bErr != nil {
    gs.log.Warn("Failed to delete image objects (ignored)", "prefix", prefix, "error", bErr)
  }
  return nil
}

// GeneratePlaceholderTile renders a colored square with the label's initials
// and stores it like any other gallery image, for sites that have no
// photography yet.
func (gs *galleryService) GeneratePlaceholderTile(ctx context.Context, siteID uuid.UUID, label string) (*types.GalleryImage, error) {
  if gs.fontFace == nil {
    return nil, fmt.Errorf("placeholder tiles disabled: TILE_FONT not set")
  }
  sites, sErr := gs.siteRepo.GetByIDs(ctx, nil, []uuid.UUID{siteID})
  if sErr != nil {
    return nil, fmt.Errorf("failed to load site: %w", sErr)
  }
  if len(sites) == 0 {
    return nil, fmt.Errorf("site %s not found", siteID)
  }
  if strings.TrimSpace(label) == "" {
    label = sites[0].Name
  }

  bg := gs.tileColors[rand.Intn(len(gs.tileColors))]
  dc := gg.NewContext(placeholderSize, placeholderSize)
  dc.SetColor(bg)
  dc.Clear()
  dc.SetFontFace(gs.fontFace)
  dc.SetRGB(1, 1, 1)
  dc.DrawStringAnchored(initialsFor(label), float64(placeholderSize)/2, float64(placeholderSize)/2, 0.5, 0.5)

  var buf bytes.Buffer
  if err := dc.EncodePNG(&buf); err != nil {
    return nil, fmt.Errorf("encode tile png: %w", err)
  }

  name := fmt.Sprintf("placeholder-%d.png", time.Now().UnixNano())
  return gs.UploadImage(ctx, siteID, name, "image/png", buf.Bytes())
}

func initialsFor(label string) string {
  fields := strings.Fields(strings.TrimSpace(label))
  if len(fields) == 0 {
    return "?"
  }
  first := strings.ToUpper(fields[0][:1])
  if len(fields) == 1 {
    return first
  }
  last := strings.ToUpper(fields[len(fields)-1][:1])
  return first + last
}
