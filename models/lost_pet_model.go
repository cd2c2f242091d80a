package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LostReportOpen     = "open"
	LostReportResolved = "resolved"
	LostReportExpired  = "expired"
)

type LostPetReport struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PetName      string    `gorm:"size:100;not null" json:"pet_name"`
	Species      string    `gorm:"size:50;not null" json:"species"`
	Breed        *string   `gorm:"size:100" json:"breed"`
	Description  string    `gorm:"type:text" json:"description"`
	PhotoURL     *string   `gorm:"size:255" json:"photo_url"`
	LastSeenArea string    `gorm:"size:255;not null" json:"last_seen_area"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	Status       string    `gorm:"size:20;not null;default:'open'" json:"status"`

	ReporterID uuid.UUID `gorm:"not null" json:"reporter_id"`
	Reporter   User      `gorm:"foreignkey:ReporterID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
