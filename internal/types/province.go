package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Province struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RegionID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"region_id"`
	Region    *Region        `gorm:"constraint:OnDelete:CASCADE;foreignKey:RegionID;references:ID" json:"region,omitempty"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Slug      string         `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Code      string         `gorm:"column:code" json:"code"`
	SortOrder int            `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Province) TableName() string { return "province" }
