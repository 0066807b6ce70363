package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryImage struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SiteID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"site_id"`
	Site            *Site          `gorm:"constraint:OnDelete:CASCADE;foreignKey:SiteID;references:ID" json:"site,omitempty"`
	OriginalName    string         `gorm:"column:original_name;not null" json:"original_name"`
	MimeType        string         `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes       int64          `gorm:"column:size_bytes" json:"size_bytes"`
	StorageKey      string         `gorm:"column:storage_key;not null" json:"storage_key"`
	ThumbKey        string         `gorm:"column:thumb_key" json:"thumb_key"`
	FileURL         string         `gorm:"column:file_url" json:"file_url"`
	ThumbURL        string         `gorm:"column:thumb_url" json:"thumb_url"`
	Width           int            `gorm:"column:width" json:"width"`
	Height          int            `gorm:"column:height" json:"height"`
	AltText         string         `gorm:"column:alt_text" json:"alt_text"`
	Caption         string         `gorm:"column:caption" json:"caption"`
	Credit          string         `gorm:"column:credit" json:"credit"`
	AICaption       string         `gorm:"column:ai_caption" json:"ai_caption"`
	AICaptionStatus string         `gorm:"column:ai_caption_status;not null;default:'none'" json:"ai_caption_status"`
	SortOrder       int            `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (GalleryImage) TableName() string { return "gallery_image" }
