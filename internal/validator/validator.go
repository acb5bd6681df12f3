package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator *validator.Validate
	gradeValidator  *GradeValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		gradeValidator:  NewGradeValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Grade returns the grade business rule validator
func (v *Validator) Grade() *GradeValidator {
	return v.gradeValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("term", validateTerm)
	validate.RegisterValidation("assessment_type", validateAssessmentType)
	validate.RegisterValidation("academic_year", validateAcademicYear)
	validate.RegisterValidation("report_format", validateReportFormat)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateTerm(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, term := range models.Terms {
		if string(term) == value {
			return true
		}
	}
	return false
}

func validateAssessmentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, t := range models.AssessmentTypes {
		if string(t) == value {
			return true
		}
	}
	return false
}

func validateAcademicYear(fl validator.FieldLevel) bool {
	_, err := analytics.ParseAcademicYear(fl.Field().String())
	return err == nil
}

func validateReportFormat(fl validator.FieldLevel) bool {
	switch models.ReportFormat(fl.Field().String()) {
	case models.FormatJSON, models.FormatExcel, models.FormatCSV:
		return true
	default:
		return false
	}
}
