package dto

import "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"

// CreateTeacherRequest represents the request body for creating a teacher
type CreateTeacherRequest struct {
	TeacherID   string `json:"teacherID" binding:"required,max=50" example:"GV001"`
	Name        string `json:"name" binding:"required,max=150" example:"Tran Thi Mai"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone       string `json:"phone" binding:"max=20"`
	DateOfBirth string `json:"dateOfBirth"`
}

// UpdateTeacherRequest carries the fields to change
type UpdateTeacherRequest struct {
	TeacherID   *string `json:"teacherID" binding:"omitempty,max=50"`
	Name        *string `json:"name" binding:"omitempty,max=150"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	DateOfBirth *string `json:"dateOfBirth"`
}

// ToModel builds a new teacher from the request
func (r *CreateTeacherRequest) ToModel() *models.Teacher {
	return &models.Teacher{
		TeacherID:   r.TeacherID,
		Name:        r.Name,
		Gender:      r.Gender,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
	}
}

// ApplyTo copies the set fields onto t
func (r *UpdateTeacherRequest) ApplyTo(t *models.Teacher) {
	if r.TeacherID != nil {
		t.TeacherID = *r.TeacherID
	}
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Gender != nil {
		t.Gender = *r.Gender
	}
	if r.Phone != nil {
		t.Phone = *r.Phone
	}
	if r.DateOfBirth != nil {
		t.DateOfBirth = *r.DateOfBirth
	}
}
