package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

// parseIDParam writes a 400 and returns 0 when the path parameter is not a
// positive integer.
func parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
			Code:    CodeValidation,
		})
		return 0
	}
	return uint(id)
}

// scopeQuery reads the academic_year and term query parameters. Term is
// upper-cased so "term1" is accepted; services validate both.
func scopeQuery(c *gin.Context) (string, models.Term) {
	academicYear := strings.TrimSpace(c.Query("academic_year"))
	term := models.Term(strings.ToUpper(strings.TrimSpace(c.Query("term"))))
	return academicYear, term
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryUint returns nil for an absent or malformed value.
func queryUint(c *gin.Context, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}

func queryDate(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

func queryTerm(c *gin.Context) *models.Term {
	raw := strings.ToUpper(strings.TrimSpace(c.Query("term")))
	if raw == "" {
		return nil
	}
	term := models.Term(raw)
	return &term
}

func queryAssessmentType(c *gin.Context) *models.AssessmentType {
	raw := strings.ToUpper(strings.TrimSpace(c.Query("assessment_type")))
	if raw == "" {
		return nil
	}
	t := models.AssessmentType(raw)
	return &t
}

// queryBool returns nil for an absent or malformed value.
func queryBool(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
