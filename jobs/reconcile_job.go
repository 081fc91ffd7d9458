package jobs

import (
	"log"

	"school_backend/database"
	"school_backend/grading"
	"school_backend/models"
)

// ReconcileGradeLetters recomputes every cached grade letter from the mark
// arrays and repairs any drift. Drift should never happen through the API;
// this catches records touched by migrations or manual database edits.
func ReconcileGradeLetters() {
	log.Println("Running job: ReconcileGradeLetters...")

	var grades []models.Grade
	if err := database.DB.Find(&grades).Error; err != nil {
		log.Printf("Error loading grades for reconciliation: %v", err)
		return
	}

	fixed := 0
	for _, grade := range grades {
		letter := grading.LetterFor(grade.AssignmentMarks, grade.QuizMarks, grade.PaperMarks)
		if letter == grade.GradeLetter {
			continue
		}

		err := database.DB.Model(&models.Grade{}).
			Where("id = ?", grade.ID).
			Update("grade_letter", letter).Error
		if err != nil {
			log.Printf("🔥 Failed to fix grade letter for record %s: %v", grade.ID, err)
			continue
		}
		log.Printf("⚠️ Fixed grade letter drift on record %s: %s -> %s", grade.ID, grade.GradeLetter, letter)
		fixed++
	}

	if fixed > 0 {
		log.Printf("✅ ReconcileGradeLetters repaired %d record(s)", fixed)
	}
}
