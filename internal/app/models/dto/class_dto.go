package dto

import (
	"time"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

// ClassRequest is the full class document used by create and replace
type ClassRequest struct {
	ClassName  string   `json:"className" binding:"required,max=100" example:"Mam 1"`
	TeacherID  string   `json:"teacherID"`
	SemesterID string   `json:"semesterID" binding:"required"`
	Students   []string `json:"students"`
}

// UpdateClassTeacherRequest assigns or clears (null or empty) the class teacher
type UpdateClassTeacherRequest struct {
	TeacherID *string `json:"teacherID"`
}

// ChangeSemesterRequest moves a class to another semester
type ChangeSemesterRequest struct {
	SemesterID string `json:"semesterID" binding:"required"`
}

// RosterRequest lists student document IDs to add to or remove from a class
type RosterRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1,dive,required"`
}

// TransferStudentsRequest moves students between two classes
type TransferStudentsRequest struct {
	SourceClassID string   `json:"sourceClassId" binding:"required"`
	TargetClassID string   `json:"targetClassId" binding:"required"`
	StudentIDs    []string `json:"studentIds" binding:"required,min=1,dive,required"`
}

// ClassResponse is a class document plus its derived student count
type ClassResponse struct {
	ID           string    `json:"id"`
	ClassName    string    `json:"className"`
	TeacherID    string    `json:"teacherID"`
	SemesterID   string    `json:"semesterID"`
	Students     []string  `json:"students"`
	StudentCount int       `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ClassRosterResponse is a class with its resolved students in roster order
type ClassRosterResponse struct {
	Class    ClassResponse    `json:"class"`
	Students []StudentSummary `json:"students"`
}

// TransferStudentsResponse returns both classes after a transfer
type TransferStudentsResponse struct {
	SourceClass ClassResponse `json:"sourceClass"`
	TargetClass ClassResponse `json:"targetClass"`
}

// ToModel builds a class document from the request
func (r *ClassRequest) ToModel() *models.Class {
	students := r.Students
	if students == nil {
		students = []string{}
	}
	return &models.Class{
		ClassName:  r.ClassName,
		TeacherID:  r.TeacherID,
		SemesterID: r.SemesterID,
		Students:   students,
	}
}

// NewClassResponse creates a ClassResponse from a class
func NewClassResponse(c *models.Class) ClassResponse {
	students := c.Students
	if students == nil {
		students = []string{}
	}
	return ClassResponse{
		ID:           c.ID,
		ClassName:    c.ClassName,
		TeacherID:    c.TeacherID,
		SemesterID:   c.SemesterID,
		Students:     students,
		StudentCount: len(students),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// NewClassResponses converts a list of classes
func NewClassResponses(classes []*models.Class) []ClassResponse {
	out := make([]ClassResponse, 0, len(classes))
	for _, c := range classes {
		out = append(out, NewClassResponse(c))
	}
	return out
}
