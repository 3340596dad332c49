package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// SemesterController handles semester operations
type SemesterController struct {
	semesterService services.SemesterService
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(semesterService services.SemesterService) *SemesterController {
	return &SemesterController{semesterService: semesterService}
}

// GetSemesters lists semesters, newest first
// @Summary List semesters
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Semester}
// @Router /semester [get]
func (c *SemesterController) GetSemesters(ctx *gin.Context) {
	semesters, err := c.semesterService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, semesters)
}

// GetSemester retrieves a semester
// @Summary Get a semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=models.Semester}
// @Failure 404 {object} dto.ErrorResponse
// @Router /semester/{id} [get]
func (c *SemesterController) GetSemester(ctx *gin.Context) {
	semester, err := c.semesterService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, semester, "")
}

// CreateSemester creates a semester
// @Summary Create a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SemesterRequest true "Semester"
// @Success 201 {object} dto.APIResponse{data=models.Semester}
// @Failure 400 {object} dto.ErrorResponse
// @Router /semester [post]
func (c *SemesterController) CreateSemester(ctx *gin.Context) {
	var req dto.SemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	semester, err := c.semesterService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, semester, "Semester created successfully")
}

// UpdateSemester replaces a semester
// @Summary Update a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Param request body dto.SemesterRequest true "Semester"
// @Success 200 {object} dto.APIResponse{data=models.Semester}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /semester/{id} [put]
func (c *SemesterController) UpdateSemester(ctx *gin.Context) {
	var req dto.SemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	semester, err := c.semesterService.Update(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, semester, "Semester updated successfully")
}

// DeleteSemester deletes a semester
// @Summary Delete a semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Semester ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /semester/{id} [delete]
func (c *SemesterController) DeleteSemester(ctx *gin.Context) {
	if err := c.semesterService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Semester deleted successfully")
}
