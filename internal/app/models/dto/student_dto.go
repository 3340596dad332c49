package dto

import (
	"time"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

// CreateStudentRequest represents the request body for creating a student
type CreateStudentRequest struct {
	StudentID          string `json:"studentID" binding:"required,max=50" example:"HS2024001"`
	Name               string `json:"name" binding:"required,max=150" example:"Nguyen Van An"`
	DateOfBirth        string `json:"dateOfBirth" binding:"required" example:"15-03-2020"`
	Gender             string `json:"gender" binding:"omitempty,oneof=male female other"`
	FatherName         string `json:"fatherName" binding:"max=150"`
	FatherOccupation   string `json:"fatherOccupation" binding:"max=150"`
	MotherName         string `json:"motherName" binding:"max=150"`
	MotherOccupation   string `json:"motherOccupation" binding:"max=150"`
	GuardianName       string `json:"guardianName" binding:"max=150"`
	GuardianOccupation string `json:"guardianOccupation" binding:"max=150"`
	Grade              string `json:"grade"`
	School             string `json:"school"`
	ClassName          string `json:"className"`
	EducationSystem    string `json:"educationSystem"`
}

// UpdateStudentRequest carries the fields to change; omitted fields keep their stored value
type UpdateStudentRequest struct {
	StudentID          *string `json:"studentID" binding:"omitempty,max=50"`
	Name               *string `json:"name" binding:"omitempty,max=150"`
	DateOfBirth        *string `json:"dateOfBirth"`
	Gender             *string `json:"gender" binding:"omitempty,oneof=male female other"`
	FatherName         *string `json:"fatherName"`
	FatherOccupation   *string `json:"fatherOccupation"`
	MotherName         *string `json:"motherName"`
	MotherOccupation   *string `json:"motherOccupation"`
	GuardianName       *string `json:"guardianName"`
	GuardianOccupation *string `json:"guardianOccupation"`
	Grade              *string `json:"grade"`
	School             *string `json:"school"`
	ClassName          *string `json:"className"`
	EducationSystem    *string `json:"educationSystem"`
}

// ToModel builds a new student from the request
func (r *CreateStudentRequest) ToModel() *models.Student {
	return &models.Student{
		StudentID:          r.StudentID,
		Name:               r.Name,
		DateOfBirth:        r.DateOfBirth,
		Gender:             r.Gender,
		FatherName:         r.FatherName,
		FatherOccupation:   r.FatherOccupation,
		MotherName:         r.MotherName,
		MotherOccupation:   r.MotherOccupation,
		GuardianName:       r.GuardianName,
		GuardianOccupation: r.GuardianOccupation,
		Grade:              r.Grade,
		School:             r.School,
		ClassName:          r.ClassName,
		EducationSystem:    r.EducationSystem,
	}
}

// ApplyTo copies the set fields onto s
func (r *UpdateStudentRequest) ApplyTo(s *models.Student) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.StudentID, r.StudentID)
	set(&s.Name, r.Name)
	set(&s.DateOfBirth, r.DateOfBirth)
	set(&s.Gender, r.Gender)
	set(&s.FatherName, r.FatherName)
	set(&s.FatherOccupation, r.FatherOccupation)
	set(&s.MotherName, r.MotherName)
	set(&s.MotherOccupation, r.MotherOccupation)
	set(&s.GuardianName, r.GuardianName)
	set(&s.GuardianOccupation, r.GuardianOccupation)
	set(&s.Grade, r.Grade)
	set(&s.School, r.School)
	set(&s.ClassName, r.ClassName)
	set(&s.EducationSystem, r.EducationSystem)
}

// StudentImportResult reports the outcome of a spreadsheet import
type StudentImportResult struct {
	Created int              `json:"created" example:"12"`
	Errors  []ImportRowError `json:"errors"`
}

// ImportRowError describes why one spreadsheet row was skipped
type ImportRowError struct {
	Row     int    `json:"row" example:"4"`
	Message string `json:"message" example:"studentID already exists"`
}

// StudentSummary is the compact student view used inside class rosters
type StudentSummary struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentID"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewStudentSummary creates a StudentSummary from a student
func NewStudentSummary(s *models.Student) StudentSummary {
	return StudentSummary{
		ID:          s.ID,
		StudentID:   s.StudentID,
		Name:        s.Name,
		DateOfBirth: s.DateOfBirth,
		Gender:      s.Gender,
		Photo:       s.Photo.URL,
		CreatedAt:   s.CreatedAt,
	}
}
