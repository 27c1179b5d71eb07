package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/app/services"
	"github.com/omniafit/omnia-backend/internal/middleware"
)

// InstructorController handles instructor endpoints.
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new InstructorController.
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{instructorService: instructorService}
}

// ListInstructorNames returns the distinct instructor names
// @Summary List instructor names
// @Description Returns the distinct instructor names, alphabetically, for picker UIs
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string} "Names retrieved"
// @Router /instructors/names [get]
func (c *InstructorController) ListInstructorNames(ctx *gin.Context) {
	names, err := c.instructorService.ListInstructorNames(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(names))
}

// GetInstructorByID returns one instructor
// @Summary Get instructor by ID
// @Tags instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=models.Instructor} "Instructor retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /instructors/{id} [get]
func (c *InstructorController) GetInstructorByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "id must be an integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	instructor, err := c.instructorService.GetInstructorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(instructor))
}

// CreateInstructor registers a new instructor
// @Summary Create an instructor
// @Description Multipart form: name plus an optional photo (image, max 5 MB)
// @Tags instructors
// @Accept multipart/form-data
// @Produce json
// @Security SessionCookie
// @Param name formData string true "Instructor name"
// @Param photo formData file false "Instructor photo"
// @Success 201 {object} dto.APIResponse{data=models.Instructor} "Instructor created"
// @Failure 400 {object} dto.ErrorResponse "Missing name or invalid photo"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /instructors [post]
func (c *InstructorController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "Invalid instructor data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The photo is optional here, unlike classes.
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		fileHeader = nil
	}
	if fileHeader != nil {
		if errorDetail := validatePhoto(fileHeader); errorDetail != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	instructor, err := c.instructorService.CreateInstructor(ctx, req.Name, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(instructor))
}

// DeleteInstructor removes an instructor by name
// @Summary Delete an instructor
// @Description Cascade delete: nulls both instructor columns on every referencing slot and removes the row in one transaction, then attempts photo cleanup best-effort
// @Tags instructors
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.DeleteInstructorRequest true "Instructor name"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteInstructorResponse} "Instructor deleted"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /instructors [delete]
func (c *InstructorController) DeleteInstructor(ctx *gin.Context) {
	var req dto.DeleteInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "name is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.instructorService.DeleteInstructor(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.DeleteInstructorResponse{
		Deleted:      result.Deleted,
		SlotsCleared: result.SlotsCleared,
	}
	if result.Photo != nil {
		cleanup := dto.PhotoCleanupResult{PhotoURL: result.Photo.PhotoURL, Status: "ok"}
		if result.Photo.Err != nil {
			cleanup.Status = "error"
			cleanup.Error = result.Photo.Err.Error()
		}
		resp.PhotoCleanup = &cleanup
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
