package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/services"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/middleware"
)

var uploadFolders = map[string]bool{
	services.FolderStudents: true,
	services.FolderTeachers: true,
	services.FolderNews:     true,
	services.FolderGeneral:  true,
}

// UploadController stores arbitrary files on the media host
type UploadController struct {
	mediaService services.MediaService
}

// NewUploadController creates a new UploadController
func NewUploadController(mediaService services.MediaService) *UploadController {
	return &UploadController{mediaService: mediaService}
}

// Upload stores one file
// @Summary Upload a file
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param folder formData string false "students, teachers, news or uploads (default)"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Media host failed"
// @Router /upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	folder := ctx.DefaultPostForm("folder", services.FolderGeneral)
	if !uploadFolders[folder] {
		badRequest(ctx, "Unknown upload folder "+folder)
		return
	}

	header, file, ok := openFormFile(ctx, "file")
	if !ok {
		return
	}
	defer file.Close()

	asset, err := c.mediaService.Upload(ctx, header.Filename, file, folder)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, dto.UploadResponse{
		URL:      asset.URL,
		PublicID: asset.PublicID,
		Folder:   folder,
	}, "File uploaded successfully")
}

// Delete removes a file by public ID
// @Summary Delete an uploaded file
// @Tags upload
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteUploadRequest true "Public ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /upload [delete]
func (c *UploadController) Delete(ctx *gin.Context) {
	var req dto.DeleteUploadRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.mediaService.Delete(ctx, req.PublicID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "File deleted successfully")
}
