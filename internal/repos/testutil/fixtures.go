package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/vostrano/heritage-backend/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      "editor",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedRegion(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Region {
	tb.Helper()
	r := &types.Region{
		ID:   uuid.New(),
		Name: "Region " + slug,
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed region: %v", err)
	}
	return r
}

func SeedProvince(tb testing.TB, ctx context.Context, tx *gorm.DB, regionID uuid.UUID, slug string) *types.Province {
	tb.Helper()
	p := &types.Province{
		ID:       uuid.New(),
		RegionID: regionID,
		Name:     "Province " + slug,
		Slug:     slug,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed province: %v", err)
	}
	return p
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:   uuid.New(),
		Name: "Category " + slug,
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedHeritageRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, refCode string) *types.HeritageRecord {
	tb.Helper()
	r := &types.HeritageRecord{
		ID:         uuid.New(),
		RefCode:    refCode,
		Name:       "Record " + refCode,
		Attributes: datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed heritage record: %v", err)
	}
	return r
}

func SeedSite(tb testing.TB, ctx context.Context, tx *gorm.DB, provinceID, categoryID uuid.UUID, slug string) *types.Site {
	tb.Helper()
	s := &types.Site{
		ID:         uuid.New(),
		Name:       "Site " + slug,
		Slug:       slug,
		ProvinceID: provinceID,
		CategoryID: categoryID,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed site: %v", err)
	}
	return s
}

func SeedGalleryImage(tb testing.TB, ctx context.Context, tx *gorm.DB, siteID uuid.UUID, sortOrder int) *types.GalleryImage {
	tb.Helper()
	img := &types.GalleryImage{
		ID:              uuid.New(),
		SiteID:          siteID,
		OriginalName:    "photo.jpg",
		MimeType:        "image/jpeg",
		StorageKey:      "sites/" + siteID.String() + "/" + uuid.NewString() + "/original.jpg",
		AICaptionStatus: "none",
		SortOrder:       sortOrder,
	}
	if err := tx.WithContext(ctx).Create(img).Error; err != nil {
		tb.Fatalf("seed gallery image: %v", err)
	}
	return img
}

func SeedArticle(tb testing.TB, ctx context.Context, tx *gorm.DB, siteID uuid.UUID, slug string) *types.Article {
	tb.Helper()
	a := &types.Article{
		ID:              uuid.New(),
		SiteID:          siteID,
		Title:           "Article " + slug,
		Slug:            slug,
		MasterText:      "Some text.",
		SlotAssignments: datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed article: %v", err)
	}
	return a
}

func SeedPageTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.PageTemplate {
	tb.Helper()
	t := &types.PageTemplate{
		ID:       uuid.New(),
		Name:     "Template " + slug,
		Slug:     slug,
		Sections: datatypes.JSON([]byte(`[{"section_type_id":"image-left-text-right","version":1}]`)),
		Version:  1,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed page template: %v", err)
	}
	return t
}

func SeedCitation(tb testing.TB, ctx context.Context, tx *gorm.DB, siteID *uuid.UUID, title string) *types.Citation {
	tb.Helper()
	c := &types.Citation{
		ID:      uuid.New(),
		SiteID:  siteID,
		Kind:    "book",
		Title:   title,
		Authors: datatypes.JSON([]byte(`[{"family":"Rossi","given":"Maria"}]`)),
		CSL:     datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed citation: %v", err)
	}
	return c
}
