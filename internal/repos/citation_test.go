package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/repos/testutil"
)

func TestCitationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCitationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	region := testutil.SeedRegion(t, ctx, tx, "citation-region")
	province := testutil.SeedProvince(t, ctx, tx, region.ID, "citation-province")
	category := testutil.SeedCategory(t, ctx, tx, "citation-category")
	site := testutil.SeedSite(t, ctx, tx, province.ID, category.ID, "citation-site")

	withDOI := testutil.SeedCitation(t, ctx, tx, &site.ID, "Journal article")
	withDOI.DOI = "10.1000/test.1"
	if err := repo.Update(ctx, tx, withDOI); err != nil {
		t.Fatalf("Update: %v", err)
	}
	testutil.SeedCitation(t, ctx, tx, &site.ID, "Monograph")

	bySite, err := repo.GetBySiteIDs(ctx, tx, []uuid.UUID{site.ID})
	if err != nil {
		t.Fatalf("GetBySiteIDs: %v", err)
	}
	if len(bySite) != 2 {
		t.Fatalf("GetBySiteIDs: expected 2 citations, got %d", len(bySite))
	}

	byDOI, err := repo.GetByDOIs(ctx, tx, []string{"10.1000/test.1"})
	if err != nil {
		t.Fatalf("GetByDOIs: %v", err)
	}
	if len(byDOI) != 1 || byDOI[0].ID != withDOI.ID {
		t.Fatalf("GetByDOIs: unexpected result: %+v", byDOI)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{withDOI.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	afterDelete, err := repo.GetByDOIs(ctx, tx, []string{"10.1000/test.1"})
	if err != nil {
		t.Fatalf("GetByDOIs after delete: %v", err)
	}
	if len(afterDelete) != 0 {
		t.Fatalf("GetByDOIs after delete: expected 0, got %d", len(afterDelete))
	}
}
