package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/types"
)

type BibliographyHandler struct {
  bibliographyService services.BibliographyService
}

func NewBibliographyHandler(bibliographyService services.BibliographyService) *BibliographyHandler {
  return &BibliographyHandler{bibliographyService: bibliographyService}
}

func (bh *BibliographyHandler) ListBySite(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  citations, err := bh.bibliographyService.ListBySite(c.Request.Context(), siteID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "list_citations_failed", err)
    return
  }
  RespondOK(c, gin.H{"citations": citations})
}

func (bh *BibliographyHandler) Add(c *gin.Context) {
  var citation types.Citation
  if err := c.ShouldBindJSON(&citation); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  created, err := bh.bibliographyService.AddCitation(c.Request.Context(), &citation)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "add_citation_failed", err)
    return
  }
  RespondOK(c, created)
}

func (bh *BibliographyHandler) ResolveDOI(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  var req struct {
    DOI string `json:"doi"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  citation, err := bh.bibliographyService.ResolveDOI(c.Request.Context(), &siteID, req.DOI)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "resolve_doi_failed", err)
    return
  }
  RespondOK(c, citation)
}

func (bh *BibliographyHandler) ResolveISBN(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  var req struct {
    ISBN string `json:"isbn"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  citation, err := bh.bibliographyService.ResolveISBN(c.Request.Context(), &siteID, req.ISBN)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "resolve_isbn_failed", err)
    return
  }
  RespondOK(c, citation)
}

func (bh *BibliographyHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var citation types.Citation
  if err := c.ShouldBindJSON(&citation); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  citation.ID = id
  updated, err := bh.bibliographyService.UpdateCitation(c.Request.Context(), &citation)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_citation_failed", err)
    return
  }
  RespondOK(c, updated)
}

func (bh *BibliographyHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := bh.bibliographyService.DeleteCitation(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusBadRequest, "delete_citation_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (bh *BibliographyHandler) Render(c *gin.Context) {
  siteID, ok := parseIDParam(c, "site_id")
  if !ok {
    return
  }
  style := c.DefaultQuery("style", services.StyleAPA)
  formatted, err := bh.bibliographyService.RenderBibliography(c.Request.Context(), siteID, style)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "render_bibliography_failed", err)
    return
  }
  RespondOK(c, gin.H{"style": style, "entries": formatted})
}
