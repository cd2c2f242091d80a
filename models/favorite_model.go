package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null;uniqueIndex:idx_favorites_user_pet" json:"user_id"`
	PetID  uuid.UUID `gorm:"not null;uniqueIndex:idx_favorites_user_pet" json:"pet_id"`

	Pet Pet `gorm:"foreignkey:PetID" json:"pet,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
