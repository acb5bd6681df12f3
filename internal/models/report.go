package models

import (
	"time"

	"gorm.io/datatypes"
)

type ReportType string

const (
	ReportStudent ReportType = "STUDENT"
	ReportClass   ReportType = "CLASS"
	ReportSchool  ReportType = "SCHOOL"
)

func (t ReportType) DefaultTemplateName() string {
	switch t {
	case ReportStudent:
		return "Student Report Card"
	case ReportClass:
		return "Class Summary Report"
	case ReportSchool:
		return "School Summary Report"
	default:
		return string(t)
	}
}

type ReportFormat string

const (
	FormatJSON  ReportFormat = "json"
	FormatExcel ReportFormat = "xlsx"
	FormatCSV   ReportFormat = "csv"
)

type ReportTemplate struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null;size:100"`
	ReportType  ReportType `json:"report_type" gorm:"not null;uniqueIndex;size:20"`
	Description string     `json:"description" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
}

type GeneratedReport struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TemplateID  uint           `json:"template_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null;size:200"`
	GeneratedBy string         `json:"generated_by" gorm:"not null;size:255;index"`
	Parameters  datatypes.JSON `json:"parameters" gorm:"type:jsonb"`
	Format      ReportFormat   `json:"format" gorm:"not null;size:10;default:json"`
	GeneratedAt time.Time      `json:"generated_at" gorm:"autoCreateTime"`

	Template *ReportTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}
