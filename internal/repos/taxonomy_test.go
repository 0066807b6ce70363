package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/repos/testutil"
)

func TestRegionAndProvinceRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	regionRepo := NewRegionRepo(db, testutil.Logger(t))
	provinceRepo := NewProvinceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	region := testutil.SeedRegion(t, ctx, tx, "campania")
	provinceA := testutil.SeedProvince(t, ctx, tx, region.ID, "napoli")
	provinceB := testutil.SeedProvince(t, ctx, tx, region.ID, "salerno")

	gotRegions, err := regionRepo.GetBySlugs(ctx, tx, []string{"campania"})
	if err != nil {
		t.Fatalf("GetBySlugs: %v", err)
	}
	if len(gotRegions) != 1 || gotRegions[0].ID != region.ID {
		t.Fatalf("GetBySlugs: unexpected result: %+v", gotRegions)
	}

	byRegion, err := provinceRepo.GetByRegionIDs(ctx, tx, []uuid.UUID{region.ID})
	if err != nil {
		t.Fatalf("GetByRegionIDs: %v", err)
	}
	if len(byRegion) != 2 {
		t.Fatalf("GetByRegionIDs: expected 2 provinces, got %d", len(byRegion))
	}

	if err := provinceRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{provinceA.ID, provinceB.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	afterDelete, err := provinceRepo.GetByRegionIDs(ctx, tx, []uuid.UUID{region.ID})
	if err != nil {
		t.Fatalf("GetByRegionIDs after delete: %v", err)
	}
	if len(afterDelete) != 0 {
		t.Fatalf("GetByRegionIDs after delete: expected 0, got %d", len(afterDelete))
	}
}

func TestCategoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCategoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	category := testutil.SeedCategory(t, ctx, tx, "archaeological-area")

	got, err := repo.GetBySlugs(ctx, tx, []string{"archaeological-area"})
	if err != nil {
		t.Fatalf("GetBySlugs: %v", err)
	}
	if len(got) != 1 || got[0].ID != category.ID {
		t.Fatalf("GetBySlugs: unexpected result: %+v", got)
	}

	category.Description = "Excavated sites and ruins"
	if err := repo.Update(ctx, tx, category); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.GetByIDs(ctx, tx, []uuid.UUID{category.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(updated) != 1 || updated[0].Description != "Excavated sites and ruins" {
		t.Fatalf("GetByIDs: update not persisted: %+v", updated)
	}
}
