package models

import "time"

// Job closure reasons recorded when a posting is closed.
const (
	ClosureDeadlinePassed = "deadline_passed"
	ClosureManualFilled   = "manual_filled"
	ClosureManualCancel   = "manual_cancelled"
	ClosureManualOther    = "manual_other"
	ClosureDeleted        = "deleted"
)

type Job struct {
	BaseModel
	EmployerID string `gorm:"type:uuid;not null;index" json:"employer_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `json:"location"`

	ApplicationDeadline time.Time `gorm:"not null;index" json:"application_deadline"`

	IsActive      bool       `gorm:"default:true;index" json:"is_active"`
	IsClosed      bool       `gorm:"default:false" json:"is_closed"`
	ClosedAt      *time.Time `json:"closed_at"`
	ClosureReason string     `json:"closure_reason,omitempty"`

	// Relations
	Employer *Employer `gorm:"foreignKey:EmployerID" json:"-"`
}
