package utils

import (
	"fmt"
	"math/rand"
	"time"
	"unicode"

	"school_backend/models"

	"gorm.io/gorm"
)

// GenerateUniqueSubjectCode derives a code like "MAT483" from the subject
// name and retries until it does not collide with an existing subject.
func GenerateUniqueSubjectCode(tx *gorm.DB, name string) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	prefix := codePrefix(name)

	for {
		code := fmt.Sprintf("%s%03d", prefix, seededRand.Intn(1000))

		var subject models.Subject
		err := tx.Where("code = ?", code).First(&subject).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}

func codePrefix(name string) string {
	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
		if len(letters) == 3 {
			break
		}
	}
	if len(letters) == 0 {
		return "SUB"
	}
	return string(letters)
}
