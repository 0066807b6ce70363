package main

import (
  "fmt"
  "os"
  "time"

  "github.com/vostrano/heritage-backend/internal/clients/biblio"
  "github.com/vostrano/heritage-backend/internal/clients/gcp"
  "github.com/vostrano/heritage-backend/internal/clients/openai"
  "github.com/vostrano/heritage-backend/internal/clients/redis"
  "github.com/vostrano/heritage-backend/internal/db"
  "github.com/vostrano/heritage-backend/internal/flow"
  "github.com/vostrano/heritage-backend/internal/handlers"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/middleware"
  "github.com/vostrano/heritage-backend/internal/repos"
  "github.com/vostrano/heritage-backend/internal/server"
  "github.com/vostrano/heritage-backend/internal/services"
  "github.com/vostrano/heritage-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  captionParallelism := utils.GetEnvAsInt("CAPTION_PARALLELISM", 4, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Section catalog
  catalog := flow.DefaultCatalog()
  if catalogPath := os.Getenv("SECTION_CATALOG_PATH"); catalogPath != "" {
    loaded, cErr := flow.LoadCatalog(catalogPath)
    if cErr != nil {
      log.Error("Could not load section catalog", "error", cErr, "path", catalogPath)
      os.Exit(1)
    }
    catalog = loaded
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  regionRepo := repos.NewRegionRepo(thePG, log)
  provinceRepo := repos.NewProvinceRepo(thePG, log)
  categoryRepo := repos.NewCategoryRepo(thePG, log)
  recordRepo := repos.NewHeritageRecordRepo(thePG, log)
  siteRepo := repos.NewSiteRepo(thePG, log)
  galleryRepo := repos.NewGalleryImageRepo(thePG, log)
  articleRepo := repos.NewArticleRepo(thePG, log)
  templateRepo := repos.NewPageTemplateRepo(thePG, log)
  citationRepo := repos.NewCitationRepo(thePG, log)

  // Clients
  log.Info("Setting up clients from main...")
  pageCache, err := redis.NewPageCache(log)
  if err != nil {
    log.Warn("Could not init PageCache; pages will compose uncached", "error", err)
  }
  bucketService, err := gcp.NewBucketService(log)
  if err != nil {
    log.Error("Could not init BucketService", "error", err)
    os.Exit(1)
  }
  openaiClient, err := openai.NewClient(log)
  if err != nil {
    log.Warn("Could not init OpenAIClient; captioning disabled", "error", err)
  }
  var captioner openai.Caption
  if openaiClient != nil {
    captioner, err = openai.NewCaption(log, openaiClient)
    if err != nil {
      log.Warn("Could not init Caption client", "error", err)
    }
  }
  crossRef, err := biblio.NewCrossRef(log)
  if err != nil {
    log.Error("Could not init CrossRef client", "error", err)
    os.Exit(1)
  }
  openLibrary, err := biblio.NewOpenLibrary(log)
  if err != nil {
    log.Error("Could not init OpenLibrary client", "error", err)
    os.Exit(1)
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  taxonomyService := services.NewTaxonomyService(thePG, log, regionRepo, provinceRepo, categoryRepo)
  heritageService := services.NewHeritageService(thePG, log, recordRepo)
  siteService := services.NewSiteService(thePG, log, siteRepo, galleryRepo, articleRepo, citationRepo, pageCache)
  articleService := services.NewArticleService(thePG, log, articleRepo, siteRepo, templateRepo, pageCache)
  templateService := services.NewTemplateService(thePG, log, templateRepo, catalog)
  galleryService, err := services.NewGalleryService(thePG, log, galleryRepo, siteRepo, bucketService)
  if err != nil {
    log.Error("Could not init GalleryService", "error", err)
    os.Exit(1)
  }
  captionService := services.NewCaptionService(thePG, log, galleryRepo, siteRepo, captioner, captionParallelism)
  bibliographyService := services.NewBibliographyService(thePG, log, citationRepo, crossRef, openLibrary)
  layoutService := services.NewLayoutService(thePG, log, articleRepo, galleryRepo, templateRepo, catalog, pageCache)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
  heritageHandler := handlers.NewHeritageHandler(heritageService)
  siteHandler := handlers.NewSiteHandler(siteService)
  articleHandler := handlers.NewArticleHandler(articleService)
  galleryHandler := handlers.NewGalleryHandler(galleryService, captionService)
  bibliographyHandler := handlers.NewBibliographyHandler(bibliographyService)
  templateHandler := handlers.NewTemplateHandler(templateService)
  layoutHandler := handlers.NewLayoutHandler(layoutService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:         authHandler,
    AuthMiddleware:      authMiddleware,
    TaxonomyHandler:     taxonomyHandler,
    HeritageHandler:     heritageHandler,
    SiteHandler:         siteHandler,
    ArticleHandler:      articleHandler,
    GalleryHandler:      galleryHandler,
    BibliographyHandler: bibliographyHandler,
    TemplateHandler:     templateHandler,
    LayoutHandler:       layoutHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server exited", "error", err)
    os.Exit(1)
  }
}
