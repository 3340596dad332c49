package dto

import "github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"

// SemesterRequest represents the request body for creating or replacing a semester
type SemesterRequest struct {
	SemesterName string `json:"semesterName" binding:"required,max=100" example:"2024-2025 HK1"`
	StartDate    string `json:"startDate" binding:"required" example:"05-09-2024"`
	EndDate      string `json:"endDate" binding:"required" example:"15-01-2025"`
}

// ToModel builds a semester from the request
func (r *SemesterRequest) ToModel() *models.Semester {
	return &models.Semester{
		SemesterName: r.SemesterName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}
