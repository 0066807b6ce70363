package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/types"
)

// HeritageService manages the master registry rows that site pages are
// built from.
type HeritageService interface {
  CreateRecord(ctx context.Context, record *types.HeritageRecord) (*types.HeritageRecord, error)
  ImportRecords(ctx context.Context, records []*types.HeritageRecord) (int, error)
  GetRecord(ctx context.Context, recordID uuid.UUID) (*types.HeritageRecord, error)
  GetRecordByRefCode(ctx context.Context, refCode string) (*types.HeritageRecord, error)
  SearchRecords(ctx context.Context, filter repos.HeritageRecordFilter) ([]*types.HeritageRecord, error)
  UpdateRecord(ctx context.Context, record *types.HeritageRecord) (*types.HeritageRecord, error)
  DeleteRecord(ctx context.Context, recordID uuid.UUID) error
}

type heritageService struct {
  db         *gorm.DB
  log        *logger.Logger
  recordRepo repos.HeritageRecordRepo
}

func NewHeritageService(db *gorm.DB, log *logger.Logger, recordRepo repos.HeritageRecordRepo) HeritageService {
  serviceLog := log.With("service", "HeritageService")
  return &heritageService{
    db:         db,
    log:        serviceLog,
    recordRepo: recordRepo,
  }
}

func (hs *heritageService) CreateRecord(ctx context.Context, record *types.HeritageRecord) (*types.HeritageRecord, error) {
  record.RefCode = strings.TrimSpace(record.RefCode)
  record.Name = strings.TrimSpace(record.Name)
  if record.RefCode == "" {
    return nil, fmt.Errorf("ref code required")
  }
  if record.Name == "" {
    return nil, fmt.Errorf("record name required")
  }
  existing, exErr := hs.recordRepo.GetByRefCodes(ctx, nil, []string{record.RefCode})
  if exErr != nil {
    return nil, fmt.Errorf("failed to check ref code: %w", exErr)
  }
  if len(existing) > 0 {
    return nil, fmt.Errorf("ref code %q already registered", record.RefCode)
  }
  record.ID = uuid.New()
  created, err := hs.recordRepo.Create(ctx, nil, []*types.HeritageRecord{record})
  if err != nil {
    return nil, fmt.Errorf("failed to create heritage record: %w", err)
  }
  return created[0], nil
}

// ImportRecords upserts a batch keyed by ref code. Rows with a known ref
// code are updated in place; the rest are inserted. Returns the number of
// new rows.
func (hs *heritageService) ImportRecords(ctx context.Context, records []*types.HeritageRecord) (int, error) {
  if len(records) == 0 {
    return 0, nil
  }

  refCodes := make([]string, 0, len(records))
  for _, r := range records {
    r.RefCode = strings.TrimSpace(r.RefCode)
    r.Name = strings.TrimSpace(r.Name)
    if r.RefCode == "" || r.Name == "" {
      return 0, fmt.Errorf("every imported record needs a ref code and name")
    }
    refCodes = append(refCodes, r.RefCode)
  }

  inserted := 0
  err := hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, exErr := hs.recordRepo.GetByRefCodes(ctx, tx, refCodes)
    if exErr != nil {
      return fmt.Errorf("failed to load existing records: %w", exErr)
    }
    byRefCode := make(map[string]*types.HeritageRecord, len(existing))
    for _, e := range existing {
      byRefCode[e.RefCode] = e
    }

    toInsert := []*types.HeritageRecord{}
    for _, r := range records {
      if prev, ok := byRefCode[r.RefCode]; ok {
        r.ID = prev.ID
        r.CreatedAt = prev.CreatedAt
        if uErr := hs.recordRepo.Update(ctx, tx, r); uErr != nil {
          return fmt.Errorf("failed to update record %s: %w", r.RefCode, uErr)
        }
        continue
      }
      r.ID = uuid.New()
      toInsert = append(toInsert, r)
    }
    if len(toInsert) > 0 {
      if _, cErr := hs.recordRepo.Create(ctx, tx, toInsert); cErr != nil {
        return fmt.Errorf("failed to insert records: %w", cErr)
      }
    }
    inserted = len(toInsert)
    return nil
  })
  if err != nil {
    return 0, err
  }
  hs.log.Info("Imported heritage records", "total", len(records), "inserted", inserted)
  return inserted, nil
}

func (hs *heritageService) GetRecord(ctx context.Context, recordID uuid.UUID) (*types.HeritageRecord, error) {
  found, err := hs.recordRepo.GetByIDs(ctx, nil, []uuid.UUID{recordID})
  if err != nil {
    return nil, fmt.Errorf("failed to load heritage record: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("heritage record %s not found", recordID)
  }
  return found[0], nil
}

func (hs *heritageService) GetRecordByRefCode(ctx context.Context, refCode string) (*types.HeritageRecord, error) {
  found, err := hs.recordRepo.GetByRefCodes(ctx, nil, []string{strings.TrimSpace(refCode)})
  if err != nil {
    return nil, fmt.Errorf("failed to load heritage record: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("heritage record %q not found", refCode)
  }
  return found[0], nil
}

func (hs *heritageService) SearchRecords(ctx context.Context, filter repos.HeritageRecordFilter) ([]*types.HeritageRecord, error) {
  if filter.Limit <= 0 || filter.Limit > 200 {
    filter.Limit = 50
  }
  return hs.recordRepo.List(ctx, nil, filter)
}

func (hs *heritageService) UpdateRecord(ctx context.Context, record *types.HeritageRecord) (*types.HeritageRecord, error) {
  if record.ID == uuid.Nil {
    return nil, fmt.Errorf("record id required")
  }
  if err := hs.recordRepo.Update(ctx, nil, record); err != nil {
    return nil, fmt.Errorf("failed to update heritage record: %w", err)
  }
  return record, nil
}

func (hs *heritageService) DeleteRecord(ctx context.Context, recordID uuid.UUID) error {
  return hs.recordRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{recordID})
}
