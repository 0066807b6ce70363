package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

type TaxonomyHandler struct {
  taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService services.TaxonomyService) *TaxonomyHandler {
  return &TaxonomyHandler{taxonomyService: taxonomyService}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_id", err)
    return uuid.Nil, false
  }
  return id, true
}

func (th *TaxonomyHandler) ListRegions(c *gin.Context) {
  regions, err := th.taxonomyService.ListRegions(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_regions_failed", err)
    return
  }
  RespondOK(c, gin.H{"regions": regions})
}

func (th *TaxonomyHandler) CreateRegion(c *gin.Context) {
  var region types.Region
  if err := c.ShouldBindJSON(&region); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := th.taxonomyService.CreateRegion(c.Request.Context(), &region)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_region_failed", err)
    return
  }
  RespondOK(c, created)
}

func (th *TaxonomyHandler) UpdateRegion(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var region types.Region
  if err := c.ShouldBindJSON(&region); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  region.ID = id
  updated, err := th.taxonomyService.UpdateRegion(c.Request.Context(), &region)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_region_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (th *TaxonomyHandler) DeleteRegion(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := th.taxonomyService.DeleteRegion(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_region_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (th *TaxonomyHandler) ListProvinces(c *gin.Context) {
  ctx := c.Request.Context()
  if regionParam := c.Query("region_id"); regionParam != "" {
    regionID, err := uuid.Parse(regionParam)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_id", err)
      return
    }
    provinces, pErr := th.taxonomyService.ListProvincesByRegion(ctx, regionID)
    if pErr != nil {
      RespondError(c, http.StatusInternalServerError, "list_provinces_failed", pErr)
      return
    }
    RespondOK(c, gin.H{"provinces": provinces})
    return
  }
  provinces, err := th.taxonomyService.ListProvinces(ctx)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_provinces_failed", err)
    return
  }
  RespondOK(c, gin.H{"provinces": provinces})
}

func (th *TaxonomyHandler) CreateProvince(c *gin.Context) {
  var province types.Province
  if err := c.ShouldBindJSON(&province); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := th.taxonomyService.CreateProvince(c.Request.Context(), &province)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_province_failed", err)
    return
  }
  RespondOK(c, created)
}

func (th *TaxonomyHandler) UpdateProvince(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var province types.Province
  if err := c.ShouldBindJSON(&province); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  province.ID = id
  updated, err := th.taxonomyService.UpdateProvince(c.Request.Context(), &province)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_province_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (th *TaxonomyHandler) DeleteProvince(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := th.taxonomyService.DeleteProvince(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_province_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (th *TaxonomyHandler) ListCategories(c *gin.Context) {
  categories, err := th.taxonomyService.ListCategories(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_categories_failed", err)
    return
  }
  RespondOK(c, gin.H{"categories": categories})
}

func (th *TaxonomyHandler) CreateCategory(c *gin.Context) {
  var category types.Category
  if err := c.ShouldBindJSON(&category); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := th.taxonomyService.CreateCategory(c.Request.Context(), &category)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_category_failed", err)
    return
  }
  RespondOK(c, created)
}

func (th *TaxonomyHandler) UpdateCategory(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var category types.Category
  if err := c.ShouldBindJSON(&category); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  category.ID = id
  updated, err := th.taxonomyService.UpdateCategory(c.Request.Context(), &category)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_category_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (th *TaxonomyHandler) DeleteCategory(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := th.taxonomyService.DeleteCategory(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_category_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
