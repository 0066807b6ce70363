package server

import (
  "os"
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/vostrano/heritage-backend/internal/handlers"
  "github.com/vostrano/heritage-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  TaxonomyHandler     *handlers.TaxonomyHandler
  HeritageHandler     *handlers.HeritageHandler
  SiteHandler         *handlers.SiteHandler
  ArticleHandler      *handlers.ArticleHandler
  GalleryHandler      *handlers.GalleryHandler
  BibliographyHandler *handlers.BibliographyHandler
  TemplateHandler     *handlers.TemplateHandler
  LayoutHandler       *handlers.LayoutHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins(),
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  public := router.Group("/api")
  {
    public.GET("/regions", cfg.TaxonomyHandler.ListRegions)
    public.GET("/provinces", cfg.TaxonomyHandler.ListProvinces)
    public.GET("/categories", cfg.TaxonomyHandler.ListCategories)
    public.GET("/sites", cfg.SiteHandler.PublicList)
    public.GET("/sites/:slug", cfg.SiteHandler.GetBySlug)
    public.GET("/pages/:slug", cfg.LayoutHandler.Page)
    public.GET("/records", cfg.HeritageHandler.Search)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/admin")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.Use(cfg.AuthMiddleware.RequireRole("admin", "editor"))
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // Taxonomy
  protected.POST("/regions", cfg.TaxonomyHandler.CreateRegion)
  protected.PUT("/regions/:id", cfg.TaxonomyHandler.UpdateRegion)
  protected.DELETE("/regions/:id", cfg.TaxonomyHandler.DeleteRegion)
  protected.POST("/provinces", cfg.TaxonomyHandler.CreateProvince)
  protected.PUT("/provinces/:id", cfg.TaxonomyHandler.UpdateProvince)
  protected.DELETE("/provinces/:id", cfg.TaxonomyHandler.DeleteProvince)
  protected.POST("/categories", cfg.TaxonomyHandler.CreateCategory)
  protected.PUT("/categories/:id", cfg.TaxonomyHandler.UpdateCategory)
  protected.DELETE("/categories/:id", cfg.TaxonomyHandler.DeleteCategory)
  // Heritage register
  protected.GET("/records", cfg.HeritageHandler.Search)
  protected.GET("/records/:id", cfg.HeritageHandler.Get)
  protected.POST("/records", cfg.HeritageHandler.Create)
  protected.POST("/records/import", cfg.HeritageHandler.Import)
  protected.PUT("/records/:id", cfg.HeritageHandler.Update)
  protected.DELETE("/records/:id", cfg.HeritageHandler.Delete)
  // Sites
  protected.GET("/sites", cfg.SiteHandler.List)
  protected.GET("/sites/:id", cfg.SiteHandler.Get)
  protected.GET("/sites/:id/detail", cfg.SiteHandler.GetDetail)
  protected.POST("/sites", cfg.SiteHandler.Create)
  protected.PUT("/sites/:id", cfg.SiteHandler.Update)
  protected.PUT("/sites/:id/published", cfg.SiteHandler.SetPublished)
  protected.PUT("/sites/:id/cover", cfg.SiteHandler.SetCoverImage)
  protected.DELETE("/sites/:id", cfg.SiteHandler.Delete)
  // Articles
  protected.GET("/sites/:id/articles", siteScopedID(cfg.ArticleHandler.ListBySite))
  protected.GET("/articles/:id", cfg.ArticleHandler.Get)
  protected.POST("/articles", cfg.ArticleHandler.Create)
  protected.PUT("/articles/:id", cfg.ArticleHandler.Update)
  protected.PUT("/articles/:id/text", cfg.ArticleHandler.UpdateMasterText)
  protected.PUT("/articles/:id/template", cfg.ArticleHandler.AssignTemplate)
  protected.PUT("/articles/:id/published", cfg.ArticleHandler.SetPublished)
  protected.DELETE("/articles/:id", cfg.ArticleHandler.Delete)
  // Gallery
  protected.GET("/sites/:id/images", siteScopedID(cfg.GalleryHandler.ListBySite))
  protected.POST("/sites/:id/images", siteScopedID(cfg.GalleryHandler.Upload))
  protected.POST("/sites/:id/images/placeholder", siteScopedID(cfg.GalleryHandler.GeneratePlaceholder))
  protected.PUT("/sites/:id/images/order", siteScopedID(cfg.GalleryHandler.Reorder))
  protected.GET("/images/:id", cfg.GalleryHandler.Get)
  protected.PUT("/images/:id", cfg.GalleryHandler.UpdateMeta)
  protected.DELETE("/images/:id", cfg.GalleryHandler.Delete)
  // Captions
  protected.POST("/images/:id/caption", cfg.GalleryHandler.Caption)
  protected.POST("/captions/run", cfg.GalleryHandler.CaptionPending)
  protected.POST("/captions/pending", cfg.GalleryHandler.MarkPending)
  // Bibliography
  protected.GET("/sites/:id/citations", siteScopedID(cfg.BibliographyHandler.ListBySite))
  protected.GET("/sites/:id/bibliography", siteScopedID(cfg.BibliographyHandler.Render))
  protected.POST("/sites/:id/citations/doi", siteScopedID(cfg.BibliographyHandler.ResolveDOI))
  protected.POST("/sites/:id/citations/isbn", siteScopedID(cfg.BibliographyHandler.ResolveISBN))
  protected.POST("/citations", cfg.BibliographyHandler.Add)
  protected.PUT("/citations/:id", cfg.BibliographyHandler.Update)
  protected.DELETE("/citations/:id", cfg.BibliographyHandler.Delete)
  // Templates
  protected.GET("/templates", cfg.TemplateHandler.List)
  protected.GET("/templates/sections", cfg.TemplateHandler.SectionCatalog)
  protected.GET("/templates/:id", cfg.TemplateHandler.Get)
  protected.POST("/templates", cfg.TemplateHandler.Create)
  protected.PUT("/templates/:id", cfg.TemplateHandler.Update)
  protected.DELETE("/templates/:id", cfg.TemplateHandler.Delete)
  // Layout
  protected.GET("/articles/:id/preview", cfg.LayoutHandler.Preview)
  protected.POST("/articles/:id/slots/pick", cfg.LayoutHandler.PickImage)
  protected.POST("/articles/:id/slots/reset", cfg.LayoutHandler.ResetSlot)
  protected.POST("/articles/:id/captions/override", cfg.LayoutHandler.OverrideCaption)
  protected.POST("/articles/:id/captions/revert", cfg.LayoutHandler.RevertCaption)

  return router
}

func allowOrigins() []string {
  if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
    parts := strings.Split(v, ",")
    origins := make([]string, 0, len(parts))
    for _, p := range parts {
      if trimmed := strings.TrimSpace(p); trimmed != "" {
        origins = append(origins, trimmed)
      }
    }
    if len(origins) > 0 {
      return origins
    }
  }
  return []string{
    "http://localhost:80",
    "http://localhost:3000",
    "http://localhost:5174",
  }
}

// siteScopedID rewrites the :id param so handlers that read :site_id
// can live under /sites/:id without a gin route conflict.
func siteScopedID(h gin.HandlerFunc) gin.HandlerFunc {
  return func(c *gin.Context) {
    c.Params = append(c.Params, gin.Param{Key: "site_id", Value: c.Param("id")})
    h(c)
  }
}
