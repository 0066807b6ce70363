package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article is the prose body of a site page. MasterText is flowed across the
// page template's sections by internal/flow; SlotAssignments holds the
// slot-key -> picked-image map reported back by the composer.
type Article struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SiteID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"site_id"`
	Site            *Site          `gorm:"constraint:OnDelete:CASCADE;foreignKey:SiteID;references:ID" json:"site,omitempty"`
	Title           string         `gorm:"column:title;not null" json:"title"`
	Slug            string         `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	MasterText      string         `gorm:"column:master_text;type:text" json:"master_text"`
	TemplateID      *uuid.UUID     `gorm:"type:uuid;index" json:"template_id,omitempty"`
	Template        *PageTemplate  `gorm:"foreignKey:TemplateID;references:ID" json:"template,omitempty"`
	SlotAssignments datatypes.JSON `gorm:"column:slot_assignments;type:jsonb" json:"slot_assignments"`
	Published       bool           `gorm:"column:published;not null;default:false" json:"published"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Article) TableName() string { return "article" }
