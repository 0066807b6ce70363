package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageTemplate stores an ordered list of section type ids as JSON, e.g.
// [{"section_type_id":"image-left-text-right","version":1}, ...].
type PageTemplate struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Slug      string         `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Sections  datatypes.JSON `gorm:"column:sections;type:jsonb;not null" json:"sections"`
	Version   int            `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PageTemplate) TableName() string { return "page_template" }
