package models

import "time"

type AcademicYear struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex;size:50"` // "2024-2025"
	StartDate time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null"`
	IsCurrent bool      `json:"is_current" gorm:"default:false"`
}

type Class struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name" gorm:"not null;size:50"`
	AcademicYearID uint    `json:"academic_year_id" gorm:"not null;index"`
	TeacherID      *string `json:"teacher_id" gorm:"size:255"`

	AcademicYear *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID"`
}

type Subject struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Code        string `json:"code" gorm:"not null;uniqueIndex;size:10"`
	Description string `json:"description" gorm:"type:text"`
}

type Student struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	FirstName      string     `json:"first_name" gorm:"not null;size:100"`
	LastName       string     `json:"last_name" gorm:"not null;size:100"`
	StudentNumber  string     `json:"student_number" gorm:"not null;uniqueIndex;size:20"`
	DateOfBirth    *time.Time `json:"date_of_birth" gorm:"type:date"`
	Email          string     `json:"email" gorm:"size:255"`
	Phone          string     `json:"phone" gorm:"size:15"`
	CurrentClassID *uint      `json:"current_class_id" gorm:"index"`
	AcademicYearID uint       `json:"academic_year_id" gorm:"not null"`
	EnrollmentDate time.Time  `json:"enrollment_date" gorm:"type:date"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CurrentClass *Class `json:"current_class,omitempty" gorm:"foreignKey:CurrentClassID;constraint:OnDelete:SET NULL"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
