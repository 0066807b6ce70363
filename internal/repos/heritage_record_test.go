package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/repos/testutil"
)

func TestHeritageRecordRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewHeritageRecordRepo(db, testutil.Logger(t))
	ctx := context.Background()

	region := testutil.SeedRegion(t, ctx, tx, "record-region")
	province := testutil.SeedProvince(t, ctx, tx, region.ID, "record-province")

	seeded := testutil.SeedHeritageRecord(t, ctx, tx, "REG-0001")
	seeded.ProvinceID = &province.ID
	if err := repo.Update(ctx, tx, seeded); err != nil {
		t.Fatalf("Update: %v", err)
	}
	testutil.SeedHeritageRecord(t, ctx, tx, "REG-0002")

	gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].RefCode != "REG-0001" {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByRefCodes, err := repo.GetByRefCodes(ctx, tx, []string{"REG-0002"})
	if err != nil {
		t.Fatalf("GetByRefCodes: %v", err)
	}
	if len(gotByRefCodes) != 1 || gotByRefCodes[0].RefCode != "REG-0002" {
		t.Fatalf("GetByRefCodes: unexpected result: %+v", gotByRefCodes)
	}

	byProvince, err := repo.List(ctx, tx, HeritageRecordFilter{ProvinceID: &province.ID})
	if err != nil {
		t.Fatalf("List by province: %v", err)
	}
	if len(byProvince) != 1 || byProvince[0].ID != seeded.ID {
		t.Fatalf("List by province: unexpected result: %+v", byProvince)
	}

	byQuery, err := repo.List(ctx, tx, HeritageRecordFilter{Query: "reg-0002"})
	if err != nil {
		t.Fatalf("List by query: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].RefCode != "REG-0002" {
		t.Fatalf("List by query: unexpected result: %+v", byQuery)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{seeded.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	afterDelete, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("GetByIDs after delete: %v", err)
	}
	if len(afterDelete) != 0 {
		t.Fatalf("GetByIDs after delete: expected 0, got %d", len(afterDelete))
	}
}
