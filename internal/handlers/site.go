package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

type SiteHandler struct {
  siteService services.SiteService
}

func NewSiteHandler(siteService services.SiteService) *SiteHandler {
  return &SiteHandler{siteService: siteService}
}

func (sh *SiteHandler) List(c *gin.Context) {
  filter := repos.SiteFilter{}
  if v := c.Query("province_id"); v != "" {
    id, err := uuid.Parse(v)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_id", err)
      return
    }
    filter.ProvinceID = &id
  }
  if v := c.Query("category_id"); v != "" {
    id, err := uuid.Parse(v)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_id", err)
      return
    }
    filter.CategoryID = &id
  }
  if v := c.Query("limit"); v != "" {
    if limit, err := strconv.Atoi(v); err == nil {
      filter.Limit = limit
    }
  }
  if v := c.Query("offset"); v != "" {
    if offset, err := strconv.Atoi(v); err == nil {
      filter.Offset = offset
    }
  }
  filter.PublishedOnly = c.Query("published_only") == "true"
  sites, err := sh.siteService.ListSites(c.Request.Context(), filter)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_sites_failed", err)
    return
  }
  RespondOK(c, gin.H{"sites": sites})
}

// PublicList is the browse endpoint. It only ever returns published sites.
func (sh *SiteHandler) PublicList(c *gin.Context) {
  filter := repos.SiteFilter{PublishedOnly: true}
  if v := c.Query("province_id"); v != "" {
    id, err := uuid.Parse(v)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_id", err)
      return
    }
    filter.ProvinceID = &id
  }
  if v := c.Query("category_id"); v != "" {
    id, err := uuid.Parse(v)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_id", err)
      return
    }
    filter.CategoryID = &id
  }
  if v := c.Query("limit"); v != "" {
    if limit, err := strconv.Atoi(v); err == nil {
      filter.Limit = limit
    }
  }
  if v := c.Query("offset"); v != "" {
    if offset, err := strconv.Atoi(v); err == nil {
      filter.Offset = offset
    }
  }
  sites, err := sh.siteService.ListSites(c.Request.Context(), filter)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_sites_failed", err)
    return
  }
  RespondOK(c, gin.H{"sites": sites})
}

func (sh *SiteHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  site, err := sh.siteService.GetSite(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "site_not_found", err)
    return
  }
  RespondOK(c, site)
}

func (sh *SiteHandler) GetBySlug(c *gin.Context) {
  detail, err := sh.siteService.GetSiteDetail(c.Request.Context(), c.Param("slug"), true)
  if err != nil {
    RespondError(c, http.StatusNotFound, "site_not_found", err)
    return
  }
  if !detail.Site.Published {
    RespondError(c, http.StatusNotFound, "site_not_found", nil)
    return
  }
  RespondOK(c, detail)
}

func (sh *SiteHandler) GetDetail(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  site, err := sh.siteService.GetSite(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "site_not_found", err)
    return
  }
  detail, err := sh.siteService.GetSiteDetail(c.Request.Context(), site.Slug, false)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "site_detail_failed", err)
    return
  }
  RespondOK(c, detail)
}

func (sh *SiteHandler) Create(c *gin.Context) {
  var site types.Site
  if err := c.ShouldBindJSON(&site); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := sh.siteService.CreateSite(c.Request.Context(), &site)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_site_failed", err)
    return
  }
  RespondOK(c, created)
}

func (sh *SiteHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var site types.Site
  if err := c.ShouldBindJSON(&site); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  site.ID = id
  updated, err := sh.siteService.UpdateSite(c.Request.Context(), &site)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_site_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (sh *SiteHandler) SetPublished(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Published bool `json:"published"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  updated, err := sh.siteService.SetPublished(c.Request.Context(), id, req.Published)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "publish_site_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (sh *SiteHandler) SetCoverImage(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    ImageID uuid.UUID `json:"image_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  updated, err := sh.siteService.SetCoverImage(c.Request.Context(), id, req.ImageID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "set_cover_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (sh *SiteHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := sh.siteService.DeleteSite(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_site_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
