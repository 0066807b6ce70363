package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Site struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string          `gorm:"column:name;not null" json:"name"`
	Slug             string          `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Summary          string          `gorm:"column:summary" json:"summary"`
	ProvinceID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"province_id"`
	Province         *Province       `gorm:"foreignKey:ProvinceID;references:ID" json:"province,omitempty"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category         *Category       `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	HeritageRecordID *uuid.UUID      `gorm:"type:uuid;index" json:"heritage_record_id,omitempty"`
	HeritageRecord   *HeritageRecord `gorm:"foreignKey:HeritageRecordID;references:ID" json:"heritage_record,omitempty"`
	CoverImageID     *uuid.UUID      `gorm:"type:uuid" json:"cover_image_id,omitempty"`
	Published        bool            `gorm:"column:published;not null;default:false" json:"published"`
	CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Site) TableName() string { return "site" }
