package controllers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/app/services"
	"github.com/omniafit/omnia-backend/internal/middleware"
)

// maxPhotoBytes caps uploaded photos at 5 MB.
const maxPhotoBytes = 5 << 20

// ClassController handles class catalog endpoints.
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController.
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// validatePhoto rejects non-image or oversized uploads before anything is
// written to storage.
func validatePhoto(fileHeader *multipart.FileHeader) *dto.ErrorDetail {
	if fileHeader.Size > maxPhotoBytes {
		return dto.NewErrorDetail(dto.ReasonInvalidArgument, "photo exceeds the 5 MB limit")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return dto.NewErrorDetail(dto.ReasonInvalidArgument, "photo must be an image")
	}
	return nil
}

// ListClasses returns the class catalog
// @Summary List classes
// @Description Returns all catalog entries ordered by name
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes retrieved"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	classes, err := c.classService.ListClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes))
}

// ListClassNames returns the distinct class names
// @Summary List class names
// @Description Returns the distinct class names, alphabetically, for picker UIs
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Names retrieved"
// @Router /classes/names [get]
func (c *ClassController) ListClassNames(ctx *gin.Context) {
	names, err := c.classService.ListClassNames(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(names))
}

// GetClassByName returns one catalog entry
// @Summary Get class by name
// @Description Case-insensitive catalog lookup
// @Tags classes
// @Produce json
// @Param name path string true "Class name"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class retrieved"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{name} [get]
func (c *ClassController) GetClassByName(ctx *gin.Context) {
	class, err := c.classService.GetClassByName(ctx, ctx.Param("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// CreateClass uploads a new catalog entry
// @Summary Create a class
// @Description Multipart form: name, description, photo (image, max 5 MB). The photo is stored first; its URL is persisted with the row.
// @Tags classes
// @Accept multipart/form-data
// @Produce json
// @Security SessionCookie
// @Param name formData string true "Class name"
// @Param description formData string true "Class description"
// @Param photo formData file true "Class photo"
// @Success 201 {object} dto.APIResponse{data=models.Class} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Missing field or invalid photo"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "Invalid class data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "photo is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if errorDetail := validatePhoto(fileHeader); errorDetail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.CreateClass(ctx, req.Name, req.Description, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(class))
}

// DeleteClass removes catalog entries by name
// @Summary Delete a class
// @Description Deletes the catalog rows and the class's schedule slots transactionally, then attempts photo cleanup best-effort and reports it alongside the committed deletion
// @Tags classes
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.DeleteClassRequest true "Class name"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteClassResponse} "Class deleted"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	var req dto.DeleteClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "name is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.classService.DeleteClass(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.DeleteClassResponse{
		Deleted:      result.Deleted,
		SlotsDeleted: result.SlotsDeleted,
		Name:         strings.TrimSpace(req.Name),
	}
	for _, cleanup := range result.Cleanups {
		item := dto.PhotoCleanupResult{PhotoURL: cleanup.PhotoURL, Status: "ok"}
		if cleanup.Err != nil {
			item.Status = "error"
			item.Error = cleanup.Err.Error()
		}
		resp.PhotoCleanup = append(resp.PhotoCleanup, item)
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
