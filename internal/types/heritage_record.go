package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HeritageRecord is one row of the master heritage database: the registry
// entry a Site page is built from. RefCode is the official register code.
type HeritageRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RefCode      string         `gorm:"column:ref_code;uniqueIndex;not null" json:"ref_code"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Designation  string         `gorm:"column:designation" json:"designation"`
	Municipality string         `gorm:"column:municipality" json:"municipality"`
	ProvinceID   *uuid.UUID     `gorm:"type:uuid;index" json:"province_id,omitempty"`
	Province     *Province      `gorm:"foreignKey:ProvinceID;references:ID" json:"province,omitempty"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category     *Category      `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Latitude     *float64       `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude    *float64       `gorm:"column:longitude" json:"longitude,omitempty"`
	YearListed   *int           `gorm:"column:year_listed" json:"year_listed,omitempty"`
	Attributes   datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (HeritageRecord) TableName() string { return "heritage_record" }
