package handlers

import (
  "io"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

const maxUploadBytes = 32 << 20

type GalleryHandler struct {
  galleryService services.GalleryService
  captionService services.CaptionService
}

func NewGalleryHandler(galleryService services.GalleryService, captionService services.CaptionService) *GalleryHandler {
  return &GalleryHandler{galleryService: galleryService, captionService: captionService}
}

func (gh *GalleryHandler) Upload(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  fileHeader, err := c.FormFile("file")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "missing_file", err)
    return
  }
  if fileHeader.Size > maxUploadBytes {
    RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", nil)
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_file", err)
    return
  }
  defer file.Close()
  raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "read_file_failed", err)
    return
  }
  mimeType := fileHeader.Header.Get("Content-Type")
  image, err := gh.galleryService.UploadImage(c.Request.Context(), siteID, fileHeader.Filename, mimeType, raw)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "upload_failed", err)
    return
  }
  RespondOK(c, image)
}

func (gh *GalleryHandler) ListBySite(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  images, err := gh.galleryService.ListBySite(c.Request.Context(), siteID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_images_failed", err)
    return
  }
  RespondOK(c, gin.H{"images": images})
}

func (gh *GalleryHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  image, err := gh.galleryService.GetImage(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "image_not_found", err)
    return
  }
  RespondOK(c, image)
}

func (gh *GalleryHandler) UpdateMeta(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var image types.GalleryImage
  if err := c.ShouldBindJSON(&image); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  image.ID = id
  updated, err := gh.galleryService.UpdateImageMeta(c.Request.Context(), &image)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_image_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (gh *GalleryHandler) Reorder(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  var req struct {
    ImageIDs []uuid.UUID `json:"image_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  if err := gh.galleryService.ReorderImages(c.Request.Context(), siteID, req.ImageIDs); err != nil {
    RespondError(c, http.StatusBadRequest, "reorder_failed", err)
    return
  }
  RespondOK(c, gin.H{"reordered": true})
}

func (gh *GalleryHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := gh.galleryService.DeleteImage(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_image_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (gh *GalleryHandler) GeneratePlaceholder(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  var req struct {
    Label string `json:"label"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  image, err := gh.galleryService.GeneratePlaceholderTile(c.Request.Context(), siteID, req.Label)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "placeholder_failed", err)
    return
  }
  RespondOK(c, image)
}

func (gh *GalleryHandler) Caption(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  image, err := gh.captionService.CaptionImage(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "caption_failed", err)
    return
  }
  RespondOK(c, image)
}

func (gh *GalleryHandler) CaptionPending(c *gin.Context) {
  var req struct {
    Limit int `json:"limit"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  result, err := gh.captionService.CaptionPending(c.Request.Context(), req.Limit)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "caption_batch_failed", err)
    return
  }
  RespondOK(c, result)
}

func (gh *GalleryHandler) MarkPending(c *gin.Context) {
  var req struct {
    ImageIDs []uuid.UUID `json:"image_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  if err := gh.captionService.MarkPending(c.Request.Context(), req.ImageIDs); err != nil {
    RespondError(c, http.StatusBadRequest, "mark_pending_failed", err)
    return
  }
  RespondOK(c, gin.H{"marked": len(req.ImageIDs)})
}
