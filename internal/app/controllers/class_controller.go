package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

// ClassController handles classes and their rosters
type ClassController struct {
	classService  services.ClassService
	rosterService services.RosterService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService, rosterService services.RosterService) *ClassController {
	return &ClassController{
		classService:  classService,
		rosterService: rosterService,
	}
}

// respondClass writes one class with its student count
func respondClass(ctx *gin.Context, status int, class *models.Class, message string) {
	respond(ctx, status, dto.NewClassResponse(class), message)
}

// GetClasses lists classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param semesterId query string false "Only classes of this semester"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse}
// @Router /class [get]
func (c *ClassController) GetClasses(ctx *gin.Context) {
	var (
		classes []*models.Class
		err     error
	)
	if semesterID := ctx.Query("semesterId"); semesterID != "" {
		classes, err = c.classService.ListBySemester(ctx, semesterID)
	} else {
		classes, err = c.classService.List(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, dto.NewClassResponses(classes))
}

// GetClass retrieves a class
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /class/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	class, err := c.classService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "")
}

// GetClassStudents returns a class with its students in roster order
// @Summary Get the roster of a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassRosterResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /class/{id}/students [get]
func (c *ClassController) GetClassStudents(ctx *gin.Context) {
	class, students, err := c.rosterService.GetRoster(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := make([]dto.StudentSummary, 0, len(students))
	for _, s := range students {
		summaries = append(summaries, dto.NewStudentSummary(s))
	}
	respond(ctx, http.StatusOK, dto.ClassRosterResponse{
		Class:    dto.NewClassResponse(class),
		Students: summaries,
	}, "")
}

// GetClassesByTeacher lists the classes of a teacher
// @Summary List classes of a teacher
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param teacherId path string true "Teacher document ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /class/teacher/{teacherId} [get]
func (c *ClassController) GetClassesByTeacher(ctx *gin.Context) {
	classes, err := c.classService.ListByTeacher(ctx, ctx.Param("teacherId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.NewClassResponses(classes), "")
}

// GetClassOfStudent returns the class whose roster holds the student
// @Summary Find the class of a student
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student document ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found or in no class"
// @Router /class/student/{studentId} [get]
func (c *ClassController) GetClassOfStudent(ctx *gin.Context) {
	class, err := c.rosterService.FindClassOfStudent(ctx, ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "")
}

// CreateClass creates a class
// @Summary Create a class
// @Description Teacher and semester must exist; listed students must be in no other class.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClassRequest true "Class document"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Student already assigned to another class"
// @Router /class [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusCreated, class, "Class created successfully")
}

// ReplaceClass overwrites a class
// @Summary Replace a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.ClassRequest true "Class document"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /class/{id} [put]
func (c *ClassController) ReplaceClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.Replace(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "Class updated successfully")
}

// DeleteClass deletes a class. Its students become unassigned.
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /class/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	if err := c.classService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Class deleted successfully")
}

// UpdateClassTeacher assigns or clears the class teacher
// @Summary Change the class teacher
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.UpdateClassTeacherRequest true "New teacher, null to clear"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /class/{id}/teacher [patch]
func (c *ClassController) UpdateClassTeacher(ctx *gin.Context) {
	var req dto.UpdateClassTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.rosterService.UpdateClassTeacher(ctx, ctx.Param("id"), req.TeacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "Class teacher updated successfully")
}

// ChangeSemester moves a class to another semester
// @Summary Change the class semester
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.ChangeSemesterRequest true "New semester"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /class/{id}/semester [patch]
func (c *ClassController) ChangeSemester(ctx *gin.Context) {
	var req dto.ChangeSemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.rosterService.ChangeSemester(ctx, ctx.Param("id"), req.SemesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "Class semester updated successfully")
}

// AddStudents appends students to the roster
// @Summary Add students to a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.RosterRequest true "Student document IDs"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Student already in this or another class"
// @Router /class/{id}/students [post]
func (c *ClassController) AddStudents(ctx *gin.Context) {
	var req dto.RosterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.rosterService.AddStudents(ctx, ctx.Param("id"), req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "Students added successfully")
}

// RemoveStudents drops students from the roster. IDs not on it are ignored.
// @Summary Remove students from a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.RosterRequest true "Student document IDs"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /class/{id}/students/remove [post]
func (c *ClassController) RemoveStudents(ctx *gin.Context) {
	var req dto.RosterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.rosterService.RemoveStudents(ctx, ctx.Param("id"), req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondClass(ctx, http.StatusOK, class, "Students removed successfully")
}

// TransferStudents moves students from one class to another atomically
// @Summary Transfer students between classes
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TransferStudentsRequest true "Source, target and students"
// @Success 200 {object} dto.APIResponse{data=dto.TransferStudentsResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Student already in target class"
// @Router /class/transfer [post]
func (c *ClassController) TransferStudents(ctx *gin.Context) {
	var req dto.TransferStudentsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	source, target, err := c.rosterService.TransferStudents(ctx, req.SourceClassID, req.TargetClassID, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.TransferStudentsResponse{
		SourceClass: dto.NewClassResponse(source),
		TargetClass: dto.NewClassResponse(target),
	}, "Students transferred successfully")
}
