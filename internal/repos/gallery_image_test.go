package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/repos/testutil"
)

func TestGalleryImageRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewGalleryImageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	region := testutil.SeedRegion(t, ctx, tx, "gallery-region")
	province := testutil.SeedProvince(t, ctx, tx, region.ID, "gallery-province")
	category := testutil.SeedCategory(t, ctx, tx, "gallery-category")
	site := testutil.SeedSite(t, ctx, tx, province.ID, category.ID, "gallery-site")

	second := testutil.SeedGalleryImage(t, ctx, tx, site.ID, 1)
	first := testutil.SeedGalleryImage(t, ctx, tx, site.ID, 0)

	bySite, err := repo.GetBySiteIDs(ctx, tx, []uuid.UUID{site.ID})
	if err != nil {
		t.Fatalf("GetBySiteIDs: %v", err)
	}
	if len(bySite) != 2 {
		t.Fatalf("GetBySiteIDs: expected 2 images, got %d", len(bySite))
	}
	if bySite[0].ID != first.ID || bySite[1].ID != second.ID {
		t.Fatalf("GetBySiteIDs: expected sort_order ordering, got %v then %v", bySite[0].SortOrder, bySite[1].SortOrder)
	}

	first.AICaptionStatus = "pending"
	if err := repo.Update(ctx, tx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}
	pending, err := repo.GetByCaptionStatus(ctx, tx, "pending", 10)
	if err != nil {
		t.Fatalf("GetByCaptionStatus: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("GetByCaptionStatus: unexpected result: %+v", pending)
	}

	if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	var count int64
	if err := tx.WithContext(ctx).Unscoped().Table("gallery_image").Where("id = ?", first.ID).Count(&count).Error; err != nil {
		t.Fatalf("count after full delete: %v", err)
	}
	if count != 0 {
		t.Fatalf("FullDeleteByIDs: row still present")
	}
}
