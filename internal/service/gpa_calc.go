package service

import (
	"math"
	"strconv"
	"strings"

	"boiler-ai/backend/internal/dto"
	"boiler-ai/backend/internal/model"
)

// gradePoints Purdue 4.0 scale
var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// GradePoints returns the quality points of a letter grade. Unknown grades score 0.
func GradePoints(grade string) float64 {
	return gradePoints[strings.ToUpper(strings.TrimSpace(grade))]
}

// isPassing reports whether a grade earns credit toward completion
func isPassing(grade string) bool {
	return GradePoints(grade) > 0
}

// CalculateGPA returns the credit-weighted GPA and the credits it covers.
func CalculateGPA(grades []dto.GradeEntry) (gpa, totalCredits float64) {
	var points float64
	for _, g := range grades {
		points += GradePoints(g.Grade) * g.Credits
		totalCredits += g.Credits
	}
	if totalCredits == 0 {
		return 0, 0
	}
	return points / totalCredits, totalCredits
}

// PredictGPA folds new grades into an existing GPA.
func PredictGPA(currentGPA, currentCredits float64, newGrades []dto.GradeEntry) float64 {
	points := currentGPA * currentCredits
	credits := currentCredits
	for _, g := range newGrades {
		points += GradePoints(g.Grade) * g.Credits
		credits += g.Credits
	}
	if credits == 0 {
		return 0
	}
	return points / credits
}

// CumulativeGPA weights each stored term GPA by its credits.
func CumulativeGPA(records []model.GPARecord) (gpa, totalCredits float64) {
	var points float64
	for _, r := range records {
		points += r.GPA * r.TotalCredits
		totalCredits += r.TotalCredits
	}
	if totalCredits == 0 {
		return 0, 0
	}
	return points / totalCredits, totalCredits
}

// FormatGPA renders a GPA with two decimals
func FormatGPA(v float64) string {
	return strconv.FormatFloat(roundGPA(v), 'f', 2, 64)
}

func roundGPA(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // no "-0.00"
	}
	return r
}
