package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/repos/testutil"
)

func TestArticleRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewArticleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	region := testutil.SeedRegion(t, ctx, tx, "article-region")
	province := testutil.SeedProvince(t, ctx, tx, region.ID, "article-province")
	category := testutil.SeedCategory(t, ctx, tx, "article-category")
	site := testutil.SeedSite(t, ctx, tx, province.ID, category.ID, "article-site")

	article := testutil.SeedArticle(t, ctx, tx, site.ID, "article-site-history")

	gotBySlugs, err := repo.GetBySlugs(ctx, tx, []string{"article-site-history"})
	if err != nil {
		t.Fatalf("GetBySlugs: %v", err)
	}
	if len(gotBySlugs) != 1 || gotBySlugs[0].ID != article.ID {
		t.Fatalf("GetBySlugs: unexpected result: %+v", gotBySlugs)
	}

	bySite, err := repo.GetBySiteIDs(ctx, tx, []uuid.UUID{site.ID})
	if err != nil {
		t.Fatalf("GetBySiteIDs: %v", err)
	}
	if len(bySite) != 1 {
		t.Fatalf("GetBySiteIDs: expected 1 article, got %d", len(bySite))
	}

	article.MasterText = "Updated body text."
	if err := repo.Update(ctx, tx, article); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.GetByIDs(ctx, tx, []uuid.UUID{article.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(updated) != 1 || updated[0].MasterText != "Updated body text." {
		t.Fatalf("GetByIDs: update not persisted: %+v", updated)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{article.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	afterDelete, err := repo.GetBySlugs(ctx, tx, []string{"article-site-history"})
	if err != nil {
		t.Fatalf("GetBySlugs after delete: %v", err)
	}
	if len(afterDelete) != 0 {
		t.Fatalf("GetBySlugs after delete: expected 0, got %d", len(afterDelete))
	}
}
