package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/vostrano/heritage-backend/internal/flow"
  "github.com/vostrano/heritage-backend/internal/services"
)

const defaultViewportWidthPx = 1280

type LayoutHandler struct {
  layoutService services.LayoutService
}

func NewLayoutHandler(layoutService services.LayoutService) *LayoutHandler {
  return &LayoutHandler{layoutService: layoutService}
}

func composeOptionsFromQuery(c *gin.Context, editMode bool) services.ComposeOptions {
  opts := services.ComposeOptions{
    ViewportWidthPx: defaultViewportWidthPx,
    EditMode:        editMode,
  }
  if v := c.Query("viewport"); v != "" {
    if width, err := strconv.ParseFloat(v, 64); err == nil && width > 0 {
      opts.ViewportWidthPx = width
    }
  }
  if v := c.Query("content_width"); v != "" {
    if width, err := strconv.ParseFloat(v, 64); err == nil && width > 0 {
      opts.ContentWidthPx = width
    }
  }
  return opts
}

// Page serves the public rendered article. Responses are cached per
// slug and viewport width.
func (lh *LayoutHandler) Page(c *gin.Context) {
  opts := composeOptionsFromQuery(c, false)
  page, err := lh.layoutService.ComposeArticleCached(c.Request.Context(), c.Param("slug"), opts)
  if err != nil {
    RespondError(c, http.StatusNotFound, "page_not_found", err)
    return
  }
  RespondOK(c, page)
}

// Preview composes an article fresh, in edit mode, for the admin UI.
func (lh *LayoutHandler) Preview(c *gin.Context) {
  articleID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  opts := composeOptionsFromQuery(c, true)
  page, err := lh.layoutService.ComposeArticle(c.Request.Context(), articleID, opts)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "compose_failed", err)
    return
  }
  RespondOK(c, page)
}

func (lh *LayoutHandler) PickImage(c *gin.Context) {
  articleID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    SlotKey string    `json:"slot_key"`
    ImageID uuid.UUID `json:"image_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  page, err := lh.layoutService.PickImage(c.Request.Context(), articleID, flow.SlotKey(req.SlotKey), req.ImageID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "pick_image_failed", err)
    return
  }
  RespondOK(c, page)
}

func (lh *LayoutHandler) ResetSlot(c *gin.Context) {
  articleID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    SlotKey string `json:"slot_key"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  page, err := lh.layoutService.ResetSlot(c.Request.Context(), articleID, flow.SlotKey(req.SlotKey))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "reset_slot_failed", err)
    return
  }
  RespondOK(c, page)
}

func (lh *LayoutHandler) OverrideCaption(c *gin.Context) {
  articleID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    SlotID  string `json:"slot_id"`
    Caption string `json:"caption"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  page, err := lh.layoutService.OverrideCaption(c.Request.Context(), articleID, req.SlotID, req.Caption)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "override_caption_failed", err)
    return
  }
  RespondOK(c, page)
}

func (lh *LayoutHandler) RevertCaption(c *gin.Context) {
  articleID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    SlotID string `json:"slot_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  page, err := lh.layoutService.RevertCaption(c.Request.Context(), articleID, req.SlotID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "revert_caption_failed", err)
    return
  }
  RespondOK(c, page)
}
