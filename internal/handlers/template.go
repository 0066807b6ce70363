package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

type TemplateHandler struct {
  templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
  return &TemplateHandler{templateService: templateService}
}

func (th *TemplateHandler) List(c *gin.Context) {
  templates, err := th.templateService.ListTemplates(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_templates_failed", err)
    return
  }
  RespondOK(c, gin.H{"templates": templates})
}

func (th *TemplateHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  template, err := th.templateService.GetTemplate(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "template_not_found", err)
    return
  }
  RespondOK(c, template)
}

func (th *TemplateHandler) Create(c *gin.Context) {
  var template types.PageTemplate
  if err := c.ShouldBindJSON(&template); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := th.templateService.CreateTemplate(c.Request.Context(), &template)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_template_failed", err)
    return
  }
  RespondOK(c, created)
}

func (th *TemplateHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var template types.PageTemplate
  if err := c.ShouldBindJSON(&template); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  template.ID = id
  updated, err := th.templateService.UpdateTemplate(c.Request.Context(), &template)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_template_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (th *TemplateHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := th.templateService.DeleteTemplate(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_template_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (th *TemplateHandler) SectionCatalog(c *gin.Context) {
  RespondOK(c, gin.H{"sections": th.templateService.SectionCatalog()})
}
