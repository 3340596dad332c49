package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/helpers"
)

// respond writes a success envelope
func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

// respondList writes items, paginated when the client sent ?page=
func respondList[T any](ctx *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	page, size, ok := helpers.ParsePaginationParams(ctx)
	if !ok {
		respond(ctx, http.StatusOK, items, "")
		return
	}
	pageItems, info := helpers.Paginate(items, page, size)
	respond(ctx, http.StatusOK, dto.PaginatedResponse{Items: pageItems, Pagination: info}, "")
}

// badRequest writes a 400 with a validation error code
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))
}

// searchTerm returns the trimmed ?search= query value
func searchTerm(ctx *gin.Context) string {
	return strings.TrimSpace(ctx.Query("search"))
}

// openFormFile opens the multipart file under field. On failure it answers 400 and returns ok=false.
func openFormFile(ctx *gin.Context, field string) (header *multipart.FileHeader, file io.ReadCloser, ok bool) {
	header, err := ctx.FormFile(field)
	if err != nil {
		badRequest(ctx, "Invalid or missing file")
		return nil, nil, false
	}
	file, err = header.Open()
	if err != nil {
		badRequest(ctx, "Uploaded file cannot be read")
		return nil, nil, false
	}
	return header, file, true
}
