package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/vostrano/heritage-backend/internal/logger"
  "github.com/vostrano/heritage-backend/internal/types"
  "github.com/vostrano/heritage-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "heritage", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  serviceLog.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Region{},
    &types.Province{},
    &types.Category{},
    &types.HeritageRecord{},
    &types.Site{},
    &types.GalleryImage{},
    &types.Article{},
    &types.PageTemplate{},
    &types.Citation{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  stmts := []string{
    `ALTER TABLE "user_token" DROP CONSTRAINT IF EXISTS "fk_user_token_user_id"`,
    `ALTER TABLE "user_token" ADD CONSTRAINT "fk_user_token_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`,
    `ALTER TABLE "province" DROP CONSTRAINT IF EXISTS "fk_province_region_id"`,
    `ALTER TABLE "province" ADD CONSTRAINT "fk_province_region_id" FOREIGN KEY ("region_id") REFERENCES "region"("id") ON DELETE CASCADE`,
    `ALTER TABLE "gallery_image" DROP CONSTRAINT IF EXISTS "fk_gallery_image_site_id"`,
    `ALTER TABLE "gallery_image" ADD CONSTRAINT "fk_gallery_image_site_id" FOREIGN KEY ("site_id") REFERENCES "site"("id") ON DELETE CASCADE`,
    `ALTER TABLE "article" DROP CONSTRAINT IF EXISTS "fk_article_site_id"`,
    `ALTER TABLE "article" ADD CONSTRAINT "fk_article_site_id" FOREIGN KEY ("site_id") REFERENCES "site"("id") ON DELETE CASCADE`,
  }
  for _, stmt := range stmts {
    if err := s.db.Exec(stmt).Error; err != nil {
      return fmt.Errorf("failed to configure foreign keys: %w", err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
