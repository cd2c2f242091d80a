package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PetStatusAvailable = "available"
	PetStatusPending   = "pending"
	PetStatusAdopted   = "adopted"
)

type Pet struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReferenceCode string    `gorm:"size:10;unique" json:"reference_code"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Species       string    `gorm:"size:50;not null" json:"species"`
	Breed         *string   `gorm:"size:100" json:"breed"`
	AgeMonths     *int      `json:"age_months"`
	Gender        *string   `gorm:"size:10" json:"gender"`
	Description   string    `gorm:"type:text" json:"description"`
	PhotoURL      *string   `gorm:"size:255" json:"photo_url"`
	Status        string    `gorm:"size:20;not null;default:'available'" json:"status"`

	OwnerID uuid.UUID `gorm:"not null" json:"owner_id"`
	Owner   User      `gorm:"foreignkey:OwnerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
