package validator

import (
	"fmt"
	"math"

	apperrors "github.com/SAP-F-2025/grade-analytics-service/internal/errors"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// GradeValidator holds the business rules a grade must satisfy before it is
// stored. A max score of zero would leave the percentage undefined.
type GradeValidator struct{}

func NewGradeValidator() *GradeValidator {
	return &GradeValidator{}
}

// MaxStoredValue is the largest value a numeric(6,2) grade column holds.
const MaxStoredValue = 9999.99

// ValidateScores checks score and max score, and that the derived
// percentage fits its column.
func (v *GradeValidator) ValidateScores(score, maxScore float64) ValidationErrors {
	var errs ValidationErrors

	switch {
	case !finite(maxScore):
		errs = append(errs, *apperrors.NewValidationErrorWithRule("max_score", "must be a finite number", "finite", fmt.Sprint(maxScore)))
	case maxScore <= 0:
		errs = append(errs, *apperrors.NewValidationErrorWithRule("max_score", "must be greater than 0", "max_score", maxScore))
	case maxScore > MaxStoredValue:
		errs = append(errs, *apperrors.NewValidationErrorWithRule("max_score", fmt.Sprintf("must be at most %.2f", MaxStoredValue), "max", maxScore))
	}

	switch {
	case !finite(score):
		errs = append(errs, *apperrors.NewValidationErrorWithRule("score", "must be a finite number", "finite", fmt.Sprint(score)))
	case score < 0:
		errs = append(errs, *apperrors.NewValidationErrorWithRule("score", "must not be negative", "score_range", score))
	case score > MaxStoredValue:
		errs = append(errs, *apperrors.NewValidationErrorWithRule("score", fmt.Sprintf("must be at most %.2f", MaxStoredValue), "max", score))
	case len(errs) == 0 && score/maxScore*100 > MaxStoredValue:
		errs = append(errs, *apperrors.NewValidationErrorWithRule("score", "gives a percentage too large to store", "score_range", score))
	}

	return errs
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidateGrade runs every rule against a grade about to be written.
func (v *GradeValidator) ValidateGrade(g *models.Grade) ValidationErrors {
	errs := v.ValidateScores(g.Score, g.MaxScore)

	if g.StudentID == 0 {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("student_id", "is required", "required", g.StudentID))
	}
	if g.SubjectID == 0 {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("subject_id", "is required", "required", g.SubjectID))
	}
	if g.AssessmentName == "" {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("assessment_name", "is required", "required", g.AssessmentName))
	}
	if !validTerm(g.Term) {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("term", "must be a valid term (TERM1, TERM2, TERM3)", "term", g.Term))
	}
	if !validAssessmentType(g.AssessmentType) {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("assessment_type", "must be a valid assessment type (EXAM, TEST, QUIZ, ASSIGNMENT, PROJECT)", "assessment_type", g.AssessmentType))
	}
	if g.Date.IsZero() {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("date", "is required", "required", nil))
	}

	return errs
}

func validTerm(t models.Term) bool {
	for _, term := range models.Terms {
		if term == t {
			return true
		}
	}
	return false
}

func validAssessmentType(t models.AssessmentType) bool {
	for _, at := range models.AssessmentTypes {
		if at == t {
			return true
		}
	}
	return false
}
