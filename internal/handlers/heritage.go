package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

type HeritageHandler struct {
  heritageService services.HeritageService
}

func NewHeritageHandler(heritageService services.HeritageService) *HeritageHandler {
  return &HeritageHandler{heritageService: heritageService}
}

func (hh *HeritageHandler) Search(c *gin.Context) {
  filter := repos.HeritageRecordFilter{
    Query: c.Query("q"),
  }
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
  records, err := hh.heritageService.SearchRecords(c.Request.Context(), filter)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "search_failed", err)
    return
  }
  RespondOK(c, gin.H{"records": records})
}

func (hh *HeritageHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  record, err := hh.heritageService.GetRecord(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "record_not_found", err)
    return
  }
  RespondOK(c, record)
}

func (hh *HeritageHandler) Create(c *gin.Context) {
  var record types.HeritageRecord
  if err := c.ShouldBindJSON(&record); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := hh.heritageService.CreateRecord(c.Request.Context(), &record)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_record_failed", err)
    return
  }
  RespondOK(c, created)
}

func (hh *HeritageHandler) Import(c *gin.Context) {
  var req struct {
    Records []*types.HeritageRecord `json:"records"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  inserted, err := hh.heritageService.ImportRecords(c.Request.Context(), req.Records)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "import_failed", err)
    return
  }
  RespondOK(c, gin.H{"total": len(req.Records), "inserted": inserted})
}

func (hh *HeritageHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var record types.HeritageRecord
  if err := c.ShouldBindJSON(&record); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  record.ID = id
  updated, err := hh.heritageService.UpdateRecord(c.Request.Context(), &record)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_record_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (hh *HeritageHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := hh.heritageService.DeleteRecord(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_record_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
