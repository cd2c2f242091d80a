package models

import (
	"time"

	"github.com/google/uuid"
)

type AdoptionRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PetID     uuid.UUID `gorm:"not null" json:"pet_id"`
	AdopterID uuid.UUID `gorm:"not null" json:"adopter_id"`

	Pet     Pet  `gorm:"foreignkey:PetID" json:"-"`
	Adopter User `gorm:"foreignkey:AdopterID" json:"-"`

	CertificateURL *string   `gorm:"size:255" json:"certificate_url"`
	AdoptedAt      time.Time `json:"adopted_at"`

	CreatedAt time.Time `json:"created_at"`
}
