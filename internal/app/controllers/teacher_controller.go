package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// TeacherController handles teacher operations
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// GetTeachers lists teachers
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or teacherID fragment"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher}
// @Router /teacher [get]
func (c *TeacherController) GetTeachers(ctx *gin.Context) {
	teachers, err := c.teacherService.Search(ctx, searchTerm(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, teachers)
}

// GetTeacher retrieves a teacher
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher document ID"
// @Success 200 {object} dto.APIResponse{data=models.Teacher}
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	teacher, err := c.teacherService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, teacher, "")
}

// CreateTeacher creates a teacher
// @Summary Create a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher information"
// @Success 201 {object} dto.APIResponse{data=models.Teacher}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "teacherID already exists"
// @Router /teacher [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, teacher, "Teacher created successfully")
}

// UpdateTeacher changes the fields present in the body
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher document ID"
// @Param request body dto.UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Teacher}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	var req dto.UpdateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.Update(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, teacher, "Teacher updated successfully")
}

// DeleteTeacher deletes a teacher. Classes keep their teacherID.
// @Summary Delete a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher document ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /teacher/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	if err := c.teacherService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Teacher deleted successfully")
}

// UploadAvatar replaces the teacher avatar
// @Summary Upload a teacher avatar
// @Tags teachers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher document ID"
// @Param file formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=models.Teacher}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /teacher/{id}/avatar [post]
func (c *TeacherController) UploadAvatar(ctx *gin.Context) {
	header, file, ok := openFormFile(ctx, "file")
	if !ok {
		return
	}
	defer file.Close()

	teacher, err := c.teacherService.UploadAvatar(ctx, ctx.Param("id"), header.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, teacher, "Avatar uploaded successfully")
}
