package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/repos/testutil"
)

func TestSiteRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSiteRepo(db, testutil.Logger(t))
	ctx := context.Background()

	region := testutil.SeedRegion(t, ctx, tx, "site-region")
	province := testutil.SeedProvince(t, ctx, tx, region.ID, "site-province")
	otherProvince := testutil.SeedProvince(t, ctx, tx, region.ID, "site-province-2")
	category := testutil.SeedCategory(t, ctx, tx, "site-category")

	published := testutil.SeedSite(t, ctx, tx, province.ID, category.ID, "castello-aragonese")
	published.Published = true
	if err := repo.Update(ctx, tx, published); err != nil {
		t.Fatalf("Update: %v", err)
	}
	testutil.SeedSite(t, ctx, tx, otherProvince.ID, category.ID, "villa-romana")

	gotBySlugs, err := repo.GetBySlugs(ctx, tx, []string{"castello-aragonese"})
	if err != nil {
		t.Fatalf("GetBySlugs: %v", err)
	}
	if len(gotBySlugs) != 1 || gotBySlugs[0].ID != published.ID {
		t.Fatalf("GetBySlugs: unexpected result: %+v", gotBySlugs)
	}

	byProvince, err := repo.List(ctx, tx, SiteFilter{ProvinceID: &province.ID})
	if err != nil {
		t.Fatalf("List by province: %v", err)
	}
	if len(byProvince) != 1 || byProvince[0].ID != published.ID {
		t.Fatalf("List by province: unexpected result: %+v", byProvince)
	}

	publishedOnly, err := repo.List(ctx, tx, SiteFilter{PublishedOnly: true})
	if err != nil {
		t.Fatalf("List published: %v", err)
	}
	for _, s := range publishedOnly {
		if !s.Published {
			t.Fatalf("List published: returned unpublished site %s", s.Slug)
		}
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{published.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	afterDelete, err := repo.GetByIDs(ctx, tx, []uuid.UUID{published.ID})
	if err != nil {
		t.Fatalf("GetByIDs after delete: %v", err)
	}
	if len(afterDelete) != 0 {
		t.Fatalf("GetByIDs after delete: expected 0, got %d", len(afterDelete))
	}
}
