package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Citation is one bibliography entry. Authors is a JSON array of
// {"family":"...","given":"..."} objects in CSL author shape; CSL holds the
// raw CSL-JSON payload returned by a DOI/ISBN lookup, when one was used.
type Citation struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SiteID         *uuid.UUID     `gorm:"type:uuid;index" json:"site_id,omitempty"`
	Site           *Site          `gorm:"foreignKey:SiteID;references:ID" json:"site,omitempty"`
	Kind           string         `gorm:"column:kind;not null;default:'book'" json:"kind"`
	DOI            string         `gorm:"column:doi;index" json:"doi"`
	ISBN           string         `gorm:"column:isbn" json:"isbn"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Authors        datatypes.JSON `gorm:"column:authors;type:jsonb" json:"authors"`
	ContainerTitle string         `gorm:"column:container_title" json:"container_title"`
	Publisher      string         `gorm:"column:publisher" json:"publisher"`
	PublisherPlace string         `gorm:"column:publisher_place" json:"publisher_place"`
	Year           int            `gorm:"column:year" json:"year"`
	Volume         string         `gorm:"column:volume" json:"volume"`
	Issue          string         `gorm:"column:issue" json:"issue"`
	Pages          string         `gorm:"column:pages" json:"pages"`
	URL            string         `gorm:"column:url" json:"url"`
	AccessedAt     *time.Time     `gorm:"column:accessed_at" json:"accessed_at,omitempty"`
	CSL            datatypes.JSON `gorm:"column:csl;type:jsonb" json:"csl"`
	SortOrder      int            `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Citation) TableName() string { return "citation" }
