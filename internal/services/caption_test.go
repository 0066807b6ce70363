package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vostrano/heritage-backend/internal/clients/openai"
	"github.com/vostrano/heritage-backend/internal/logger"
	"github.com/vostrano/heritage-backend/internal/repos"
	"github.com/vostrano/heritage-backend/internal/types"
)

type fakeGalleryRepo struct {
	mu     sync.Mutex
	images map[uuid.UUID]*types.GalleryImage
}

func newFakeGalleryRepo(images ...*types.GalleryImage) *fakeGalleryRepo {
	repo := &fakeGalleryRepo{images: map[uuid.UUID]*types.GalleryImage{}}
	for _, img := range images {
		repo.images[img.ID] = img
	}
	return repo
}

func (f *fakeGalleryRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.GalleryImage) ([]*types.GalleryImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, img := range images {
		f.images[img.ID] = img
	}
	return images, nil
}

func (f *fakeGalleryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.GalleryImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.GalleryImage
	for _, id := range imageIDs {
		if img, ok := f.images[id]; ok {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeGalleryRepo) GetBySiteIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.GalleryImage, error) {
	return nil, nil
}

func (f *fakeGalleryRepo) GetByCaptionStatus(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.GalleryImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.GalleryImage
	for _, img := range f.images {
		if img.AICaptionStatus == status && len(out) < limit {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeGalleryRepo) Update(ctx context.Context, tx *gorm.DB, image *types.GalleryImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[image.ID] = image
	return nil
}

func (f *fakeGalleryRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error {
	return nil
}

func (f *fakeGalleryRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error {
	return nil
}

type fakeSiteRepo struct {
	sites map[uuid.UUID]*types.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, tx *gorm.DB, sites []*types.Site) ([]*types.Site, error) {
	return sites, nil
}

func (f *fakeSiteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) ([]*types.Site, error) {
	var out []*types.Site
	for _, id := range siteIDs {
		if s, ok := f.sites[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSiteRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Site, error) {
	return nil, nil
}

func (f *fakeSiteRepo) List(ctx context.Context, tx *gorm.DB, filter repos.SiteFilter) ([]*types.Site, error) {
	return nil, nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, tx *gorm.DB, site *types.Site) error {
	return nil
}

func (f *fakeSiteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, siteIDs []uuid.UUID) error {
	return nil
}

type fakeCaptioner struct {
	failURL string
}

func (f *fakeCaptioner) DescribeImage(ctx context.Context, req openai.CaptionRequest) (*openai.CaptionResult, error) {
	if req.ImageURL == f.failURL {
		return nil, fmt.Errorf("model refused")
	}
	return &openai.CaptionResult{
		Caption: "A weathered stone tower above the harbour.",
		AltText: "Stone watchtower on a cliff",
	}, nil
}

type rateLimitErr struct{}

func (rateLimitErr) Error() string       { return "rate limited" }
func (rateLimitErr) HTTPStatusCode() int { return http.StatusTooManyRequests }

// rateLimitedCaptioner rejects the first attempt for every image with a 429
// and succeeds on the retry.
type rateLimitedCaptioner struct {
	mu       sync.Mutex
	attempts map[string]int
}

func (f *rateLimitedCaptioner) DescribeImage(ctx context.Context, req openai.CaptionRequest) (*openai.CaptionResult, error) {
	f.mu.Lock()
	f.attempts[req.ImageURL]++
	n := f.attempts[req.ImageURL]
	f.mu.Unlock()
	if n == 1 {
		return nil, rateLimitErr{}
	}
	return &openai.CaptionResult{
		Caption: "A mosaic floor uncovered during excavation.",
		AltText: "Roman mosaic floor",
	}, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestCaptionPendingMixedResults(t *testing.T) {
	siteID := uuid.New()
	good := &types.GalleryImage{ID: uuid.New(), SiteID: siteID, ThumbURL: "https://cdn/test/good.jpg", AICaptionStatus: CaptionStatusPending}
	bad := &types.GalleryImage{ID: uuid.New(), SiteID: siteID, ThumbURL: "https://cdn/test/bad.jpg", AICaptionStatus: CaptionStatusPending}
	galleryRepo := newFakeGalleryRepo(good, bad)
	siteRepo := &fakeSiteRepo{sites: map[uuid.UUID]*types.Site{siteID: {ID: siteID, Name: "Torre Normanna"}}}

	svc := NewCaptionService(nil, testLogger(t), galleryRepo, siteRepo, &fakeCaptioner{failURL: "https://cdn/test/bad.jpg"}, 2)

	result, err := svc.CaptionPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("CaptionPending: %v", err)
	}
	if result.Processed != 2 || result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("unexpected batch result: %+v", result)
	}
	if good.AICaptionStatus != CaptionStatusDone || good.AICaption == "" {
		t.Fatalf("successful image not captioned: %+v", good)
	}
	if good.AltText != "Stone watchtower on a cliff" {
		t.Fatalf("alt text not filled from result: %q", good.AltText)
	}
	if bad.AICaptionStatus != CaptionStatusFailed {
		t.Fatalf("failed image not marked failed: %+v", bad)
	}
}

func TestCaptionPendingSplitsOnRateLimit(t *testing.T) {
	siteID := uuid.New()
	var images []*types.GalleryImage
	for i := 0; i < 4; i++ {
		images = append(images, &types.GalleryImage{
			ID:              uuid.New(),
			SiteID:          siteID,
			ThumbURL:        fmt.Sprintf("https://cdn/test/%d.jpg", i),
			AICaptionStatus: CaptionStatusPending,
		})
	}
	galleryRepo := newFakeGalleryRepo(images...)
	siteRepo := &fakeSiteRepo{sites: map[uuid.UUID]*types.Site{siteID: {ID: siteID, Name: "Villa dei Mosaici"}}}
	captioner := &rateLimitedCaptioner{attempts: map[string]int{}}

	svc := NewCaptionService(nil, testLogger(t), galleryRepo, siteRepo, captioner, 4)

	result, err := svc.CaptionPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("CaptionPending: %v", err)
	}
	if result.Processed != 4 || result.Succeeded != 4 || result.Failed != 0 {
		t.Fatalf("unexpected batch result: %+v", result)
	}
	for _, img := range images {
		if img.AICaptionStatus != CaptionStatusDone {
			t.Fatalf("image %s not captioned after retry: %+v", img.ID, img)
		}
		if captioner.attempts[img.ThumbURL] != 2 {
			t.Fatalf("image %s attempted %d times, want 2", img.ID, captioner.attempts[img.ThumbURL])
		}
	}
}

func TestCaptionImageNotConfigured(t *testing.T) {
	img := &types.GalleryImage{ID: uuid.New(), SiteID: uuid.New(), AICaptionStatus: CaptionStatusPending}
	galleryRepo := newFakeGalleryRepo(img)
	siteRepo := &fakeSiteRepo{sites: map[uuid.UUID]*types.Site{}}

	svc := NewCaptionService(nil, testLogger(t), galleryRepo, siteRepo, nil, 1)
	if _, err := svc.CaptionImage(context.Background(), img.ID); err == nil {
		t.Fatalf("expected error when captioner is not configured")
	}
}
