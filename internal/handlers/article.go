package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

type ArticleHandler struct {
  articleService services.ArticleService
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
  return &ArticleHandler{articleService: articleService}
}

func (ah *ArticleHandler) ListBySite(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  articles, err := ah.articleService.ListArticlesBySite(c.Request.Context(), siteID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_articles_failed", err)
    return
  }
  RespondOK(c, gin.H{"articles": articles})
}

func (ah *ArticleHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  article, err := ah.articleService.GetArticle(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "article_not_found", err)
    return
  }
  RespondOK(c, article)
}

func (ah *ArticleHandler) Create(c *gin.Context) {
  var article types.Article
  if err := c.ShouldBindJSON(&article); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := ah.articleService.CreateArticle(c.Request.Context(), &article)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_article_failed", err)
    return
  }
  RespondOK(c, created)
}

func (ah *ArticleHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var article types.Article
  if err := c.ShouldBindJSON(&article); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  article.ID = id
  updated, err := ah.articleService.UpdateArticle(c.Request.Context(), &article)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_article_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (ah *ArticleHandler) UpdateMasterText(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    MasterText string `json:"master_text"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  updated, err := ah.articleService.UpdateMasterText(c.Request.Context(), id, req.MasterText)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_master_text_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (ah *ArticleHandler) AssignTemplate(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    TemplateID uuid.UUID `json:"template_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  updated, err := ah.articleService.AssignTemplate(c.Request.Context(), id, req.TemplateID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "assign_template_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (ah *ArticleHandler) SetPublished(c *gin.Context) {
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
  updated, err := ah.articleService.SetPublished(c.Request.Context(), id, req.Published)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "publish_article_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (ah *ArticleHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := ah.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_article_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
