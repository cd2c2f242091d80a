package utils

import (
	"math/rand"
	"time"

	"github.com/jkamau589/pet_haven/models"
	"gorm.io/gorm"
)

const referenceCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReferenceCode produces the short code printed on a pet
// listing, retrying until it finds one not already taken.
func GenerateUniqueReferenceCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referenceCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var pet models.Pet
		err := tx.Where("reference_code = ?", code).First(&pet).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
