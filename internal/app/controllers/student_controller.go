package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

const spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentController handles student operations
type StudentController struct {
	studentService services.StudentService
	exportService  services.ExportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, exportService services.ExportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		exportService:  exportService,
	}
}

// GetStudents lists students
// @Summary List students
// @Description Lists all students ordered by name. With search, matches name or studentID.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or studentID fragment"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	students, err := c.studentService.Search(ctx, searchTerm(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, students)
}

// GetStudent retrieves a student by document ID
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student document ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "")
}

// CreateStudent creates a student
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "studentID already exists"
// @Router /student [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, student, "Student created successfully")
}

// UpdateStudent changes the fields present in the body
// @Summary Update a student
// @Description Partial update. Omitted fields keep their stored value.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student document ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /student/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Update(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Student updated successfully")
}

// DeleteStudent deletes a student and removes it from its class
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student document ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Student deleted successfully")
}

// UploadDocument stores a photo or certificate for a student
// @Summary Upload a student document
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student document ID"
// @Param kind path string true "photo, birthCertificate or householdRegistration"
// @Param file formData file true "File to upload"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Media host failed"
// @Router /student/{id}/documents/{kind} [post]
func (c *StudentController) UploadDocument(ctx *gin.Context) {
	header, file, ok := openFormFile(ctx, "file")
	if !ok {
		return
	}
	defer file.Close()

	kind := models.DocumentKind(ctx.Param("kind"))
	student, err := c.studentService.UploadDocument(ctx, ctx.Param("id"), kind, header.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Document uploaded successfully")
}

// ExportStudents downloads every student as a spreadsheet
// @Summary Export students to Excel
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /student/export [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.exportService.ExportStudents(ctx, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "students-" + time.Now().Format("20060102") + ".xlsx"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, spreadsheetContentType, buf.Bytes())
}

// ImportStudents creates students from an uploaded spreadsheet
// @Summary Import students from Excel
// @Description Creates one student per row. Failing rows are reported and skipped.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} dto.APIResponse{data=dto.StudentImportResult}
// @Failure 400 {object} dto.ErrorResponse
// @Router /student/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	_, file, ok := openFormFile(ctx, "file")
	if !ok {
		return
	}
	defer file.Close()

	result, err := c.exportService.ImportStudents(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, result, "Import finished")
}
