package grading

// The authoritative value for each assessment type is the latest mark in its
// array: a resubmission corrects the previous contribution rather than adding
// to it. An empty array contributes zero.
func latestOrZero(marks []float64) float64 {
	if len(marks) == 0 {
		return 0
	}
	return marks[len(marks)-1]
}

// Performance is the sum of the latest assignment, quiz and paper mark.
func Performance(assignmentMarks, quizMarks, paperMarks []float64) float64 {
	return latestOrZero(assignmentMarks) + latestOrZero(quizMarks) + latestOrZero(paperMarks)
}

// Classify maps a performance score to a letter grade. Band lower bounds are
// inclusive and there is no upper clamp: scores above 100 still classify as A.
func Classify(performance float64) string {
	switch {
	case performance >= 90:
		return "A"
	case performance >= 80:
		return "B"
	case performance >= 70:
		return "C"
	case performance >= 50:
		return "D"
	default:
		return "F"
	}
}

// LetterFor recomputes the cached grade letter from the full mark history.
func LetterFor(assignmentMarks, quizMarks, paperMarks []float64) string {
	return Classify(Performance(assignmentMarks, quizMarks, paperMarks))
}
