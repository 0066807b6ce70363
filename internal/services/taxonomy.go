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

// TaxonomyService manages the browse hierarchy: regions contain provinces,
// and categories cut across both.
type TaxonomyService interface {
  CreateRegion(ctx context.Context, region *types.Region) (*types.Region, error)
  ListRegions(ctx context.Context) ([]*types.Region, error)
  UpdateRegion(ctx context.Context, region *types.Region) (*types.Region, error)
  DeleteRegion(ctx context.Context, regionID uuid.UUID) error

  CreateProvince(ctx context.Context, province *types.Province) (*types.Province, error)
  ListProvinces(ctx context.Context) ([]*types.Province, error)
  ListProvincesByRegion(ctx context.Context, regionID uuid.UUID) ([]*types.Province, error)
  GetProvinceBySlug(ctx context.Context, slug string) (*types.Province, error)
  UpdateProvince(ctx context.Context, province *types.Province) (*types.Province, error)
  DeleteProvince(ctx context.Context, provinceID uuid.UUID) error

  CreateCategory(ctx context.Context, category *types.Category) (*types.Category, error)
  ListCategories(ctx context.Context) ([]*types.Category, error)
  GetCategoryBySlug(ctx context.Context, slug string) (*types.Category, error)
  UpdateCategory(ctx context.Context, category *types.Category) (*types.Category, error)
  DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

type taxonomyService struct {
  db           *gorm.DB
  log          *logger.Logger
  regionRepo   repos.RegionRepo
  provinceRepo repos.ProvinceRepo
  categoryRepo repos.CategoryRepo
}

func NewTaxonomyService(
  db *gorm.DB,
  log *logger.Logger,
  regionRepo repos.RegionRepo,
  provinceRepo repos.ProvinceRepo,
  categoryRepo repos.CategoryRepo,
) TaxonomyService {
  serviceLog := log.With("service", "TaxonomyService")
  return &taxonomyService{
    db:           db,
    log:          serviceLog,
    regionRepo:   regionRepo,
    provinceRepo: provinceRepo,
    categoryRepo: categoryRepo,
  }
}

// Slugify lowercases, strips punctuation, and joins words with hyphens so
// names like "Fiordo del Sur" become "fiordo-del-sur".
func Slugify(name string) string {
  name = strings.ToLower(strings.TrimSpace(name))
  var b strings.Builder
  lastHyphen := true
  for _, r := range name {
    switch {
    case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
      b.WriteRune(r)
      lastHyphen = false
    default:
      if !lastHyphen {
        b.WriteRune('-')
        lastHyphen = true
      }
    }
  }
  return strings.Trim(b.String(), "-")
}

func (ts *taxonomyService) CreateRegion(ctx context.Context, region *types.Region) (*types.Region, error) {
  if strings.TrimSpace(region.Name) == "" {
    return nil, fmt.Errorf("region name required")
  }
  if region.Slug == "" {
    region.Slug = Slugify(region.Name)
  }
  region.ID = uuid.New()
  created, err := ts.regionRepo.Create(ctx, nil, []*types.Region{region})
  if err != nil {
    return nil, fmt.Errorf("failed to create region: %w", err)
  }
  return created[0], nil
}

func (ts *taxonomyService) ListRegions(ctx context.Context) ([]*types.Region, error) {
  return ts.regionRepo.List(ctx, nil)
}

func (ts *taxonomyService) UpdateRegion(ctx context.Context, region *types.Region) (*types.Region, error) {
  if region.ID == uuid.Nil {
    return nil, fmt.Errorf("region id required")
  }
  if region.Slug == "" {
    region.Slug = Slugify(region.Name)
  }
  if err := ts.regionRepo.Update(ctx, nil, region); err != nil {
    return nil, fmt.Errorf("failed to update region: %w", err)
  }
  return region, nil
}

func (ts *taxonomyService) DeleteRegion(ctx context.Context, regionID uuid.UUID) error {
  return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    provinces, pErr := ts.provinceRepo.GetByRegionIDs(ctx, tx, []uuid.UUID{regionID})
    if pErr != nil {
      return fmt.Errorf("failed to check provinces for region: %w", pErr)
    }
    if len(provinces) > 0 {
      return fmt.Errorf("region still has %d provinces", len(provinces))
    }
    if dErr := ts.regionRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{regionID}); dErr != nil {
      return fmt.Errorf("failed to delete region: %w", dErr)
    }
    return nil
  })
}

func (ts *taxonomyService) CreateProvince(ctx context.Context, province *types.Province) (*types.Province, error) {
  if strings.TrimSpace(province.Name) == "" {
    return nil, fmt.Errorf("province name required")
  }
  if province.RegionID == uuid.Nil {
    return nil, fmt.Errorf("province region id required")
  }
  regions, rErr := ts.regionRepo.GetByIDs(ctx, nil, []uuid.UUID{province.RegionID})
  if rErr != nil {
    return nil, fmt.Errorf("failed to load region: %w", rErr)
  }
  if len(regions) == 0 {
    return nil, fmt.Errorf("region %s not found", province.RegionID)
  }
  if province.Slug == "" {
    province.Slug = Slugify(province.Name)
  }
  province.ID = uuid.New()
  created, err := ts.provinceRepo.Create(ctx, nil, []*types.Province{province})
  if err != nil {
    return nil, fmt.Errorf("failed to create province: %w", err)
  }
  return created[0], nil
}

func (ts *taxonomyService) ListProvinces(ctx context.Context) ([]*types.Province, error) {
  return ts.provinceRepo.List(ctx, nil)
}

func (ts *taxonomyService) ListProvincesByRegion(ctx context.Context, regionID uuid.UUID) ([]*types.Province, error) {
  return ts.provinceRepo.GetByRegionIDs(ctx, nil, []uuid.UUID{regionID})
}

func (ts *taxonomyService) GetProvinceBySlug(ctx context.Context, slug string) (*types.Province, error) {
  found, err := ts.provinceRepo.GetBySlugs(ctx, nil, []string{slug})
  if err != nil {
    return nil, fmt.Errorf("failed to load province: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("province %q not found", slug)
  }
  return found[0], nil
}

func (ts *taxonomyService) UpdateProvince(ctx context.Context, province *types.Province) (*types.Province, error) {
  if province.ID == uuid.Nil {
    return nil, fmt.Errorf("province id required")
  }
  if province.Slug == "" {
    province.Slug = Slugify(province.Name)
  }
  if err := ts.provinceRepo.Update(ctx, nil, province); err != nil {
    return nil, fmt.Errorf("failed to update province: %w", err)
  }
  return province, nil
}

func (ts *taxonomyService) DeleteProvince(ctx context.Context, provinceID uuid.UUID) error {
  return ts.provinceRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{provinceID})
}

func (ts *taxonomyService) CreateCategory(ctx context.Context, category *types.Category) (*types.Category, error) {
  if strings.TrimSpace(category.Name) == "" {
    return nil, fmt.Errorf("category name required")
  }
  if category.Slug == "" {
    category.Slug = Slugify(category.Name)
  }
  category.ID = uuid.New()
  created, err := ts.categoryRepo.Create(ctx, nil, []*types.Category{category})
  if err != nil {
    return nil, fmt.Errorf("failed to create category: %w", err)
  }
  return created[0], nil
}

func (ts *taxonomyService) ListCategories(ctx context.Context) ([]*types.Category, error) {
  return ts.categoryRepo.List(ctx, nil)
}

func (ts *taxonomyService) GetCategoryBySlug(ctx context.Context, slug string) (*types.Category, error) {
  found, err := ts.categoryRepo.GetBySlugs(ctx, nil, []string{slug})
  if err != nil {
    return nil, fmt.Errorf("failed to load category: %w", err)
  }
  if len(found) == 0 {
    return nil, fmt.Errorf("category %q not found", slug)
  }
  return found[0], nil
}

func (ts *taxonomyService) UpdateCategory(ctx context.Context, category *types.Category) (*types.Category, error) {
  if category.ID == uuid.Nil {
    return nil, fmt.Errorf("category id required")
  }
  if category.Slug == "" {
    category.Slug = Slugify(category.Name)
  }
  if err := ts.categoryRepo.Update(ctx, nil, category); err != nil {
    return nil, fmt.Errorf("failed to update category: %w", err)
  }
  return category, nil
}

func (ts *taxonomyService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
  return ts.categoryRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{categoryID})
}
