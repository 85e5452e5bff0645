package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Statuses lists every valid project status.
var Statuses = []string{StatusDraft, StatusPublished, StatusArchived}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Project is a single rehab project. (ID, Status) is the composite key, so a
// status change moves the row instead of patching it in place.
type Project struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Status string `gorm:"type:varchar(16);primaryKey;check:chk_projects_status,status IN ('draft','published','archived');index:ix_projects_status_updated,priority:1" json:"status"`
	Slug   string `gorm:"type:varchar(255);not null;uniqueIndex:uq_projects_slug" json:"slug"`

	Title            string `gorm:"type:text;not null" json:"title"`
	Location         string `gorm:"type:text" json:"location"`
	ShortDescription string `gorm:"type:text" json:"shortDescription"`
	FullDescription  string `gorm:"type:text" json:"fullDescription"`
	ScopeOfWork      string `gorm:"type:text" json:"scopeOfWork"`
	Challenges       string `gorm:"type:text" json:"challenges"`
	Outcomes         string `gorm:"type:text" json:"outcomes"`

	PurchaseDate   string `gorm:"type:text" json:"purchaseDate"`
	CompletionDate string `gorm:"type:text" json:"completionDate"`

	Budget        *float64 `gorm:"type:numeric(14,2)" json:"budget"`
	FinalCost     *float64 `gorm:"type:numeric(14,2)" json:"finalCost"`
	SquareFootage *int     `gorm:"type:integer" json:"squareFootage"`

	BeforeImages       datatypes.JSONSlice[ProjectImage] `gorm:"type:jsonb" swaggertype:"array,object" json:"beforeImages"`
	AfterImages        datatypes.JSONSlice[ProjectImage] `gorm:"type:jsonb" swaggertype:"array,object" json:"afterImages"`
	PrimaryBeforeImage string                            `gorm:"type:text" json:"primaryBeforeImage"`
	PrimaryAfterImage  string                            `gorm:"type:text" json:"primaryAfterImage"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;index:ix_projects_status_updated,priority:2" json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

type ProjectImage struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	AltText      string `json:"altText"`
	Order        int    `json:"order"`
}

const (
	ImageGroupBefore = "before"
	ImageGroupAfter  = "after"
)

// ProjectStats is the dashboard aggregate.
type ProjectStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
}
