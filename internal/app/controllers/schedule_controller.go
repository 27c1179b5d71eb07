package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/app/services"
	"github.com/omniafit/omnia-backend/internal/middleware"
)

// ScheduleController handles the weekly timetable endpoints.
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController.
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// ListSchedule returns the full weekly schedule
// @Summary List the weekly schedule
// @Description Returns every slot ordered by time, for calendar rendering
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ClassSlot} "Schedule retrieved"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /schedule [get]
func (c *ScheduleController) ListSchedule(ctx *gin.Context) {
	slots, err := c.scheduleService.ListSlots(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(slots))
}

// CreateSlot schedules a new class slot
// @Summary Create a schedule slot
// @Description Runs conflict resolution at minute granularity and persists the slot on ALLOW. Rejections carry the occupant list; a second-slot candidate (":01" seconds) proceeds only when allowSecondSlot is set.
// @Tags schedule
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.CreateSlotRequest true "Slot to schedule"
// @Success 201 {object} dto.APIResponse{data=models.ClassSlot} "Slot created"
// @Failure 400 {object} dto.ErrorResponse "Malformed time or missing field"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 409 {object} dto.ErrorResponse "duplicate_slot, slot_taken or slot_taken_second_slot"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /schedule [post]
func (c *ScheduleController) CreateSlot(ctx *gin.Context) {
	var req dto.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "Invalid slot data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	slot, err := c.scheduleService.CreateSlot(ctx, services.CreateSlotInput{
		ClassName:       req.ClassName,
		DayOfWeek:       req.DayOfWeek,
		TimeOfDay:       req.TimeOfDay,
		InstructorA:     req.InstructorA,
		InstructorB:     req.InstructorB,
		AllowSecondSlot: req.AllowSecondSlot,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(slot))
}

// DeleteSlot removes a slot by its exact key tuple
// @Summary Delete a schedule slot
// @Description Exact match on className, dayOfWeek and timeOfDay; reports the number of rows removed
// @Tags schedule
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.DeleteSlotRequest true "Slot to delete"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteSlotResponse} "Slot deleted"
// @Failure 400 {object} dto.ErrorResponse "Malformed time"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 404 {object} dto.ErrorResponse "No slot matches"
// @Router /schedule [delete]
func (c *ScheduleController) DeleteSlot(ctx *gin.Context) {
	var req dto.DeleteSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "Invalid delete request").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	deleted, err := c.scheduleService.DeleteSlot(ctx, req.ClassName, req.DayOfWeek, req.TimeOfDay)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DeleteSlotResponse{Deleted: deleted}))
}

// GetSlot looks up a slot by exact day and time
// @Summary Get a slot by day and time
// @Description Exact (non-truncated) lookup used by slot-detail views
// @Tags schedule
// @Produce json
// @Param dayOfWeek query int true "Day of week (0-6, 0 = Sunday)"
// @Param timeOfDay query string true "Time of day, HH:MM or HH:MM:SS"
// @Success 200 {object} dto.APIResponse{data=models.ClassSlot} "Slot retrieved"
// @Failure 400 {object} dto.ErrorResponse "Malformed parameters"
// @Failure 404 {object} dto.ErrorResponse "No slot at that time"
// @Router /schedule/slot [get]
func (c *ScheduleController) GetSlot(ctx *gin.Context) {
	dayOfWeek, err := strconv.Atoi(ctx.Query("dayOfWeek"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "dayOfWeek must be an integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	slot, err := c.scheduleService.GetSlot(ctx, dayOfWeek, ctx.Query("timeOfDay"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(slot))
}

// AssignInstructors binds instructors to an existing slot
// @Summary Assign instructors to a slot
// @Description Attaches up to two instructors by name in one transaction. Empty names unassign; unresolved names become null without failing the operation.
// @Tags schedule
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.AssignInstructorsRequest true "Slot identity and instructor names"
// @Success 200 {object} dto.APIResponse{data=models.ClassSlot} "Updated slot"
// @Failure 400 {object} dto.ErrorResponse "Malformed time or missing field"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 404 {object} dto.ErrorResponse "Class or slot not found"
// @Failure 409 {object} dto.ErrorResponse "Constraint violated (invalid_instructor_reference or column_not_nullable)"
// @Router /schedule/instructors [put]
func (c *ScheduleController) AssignInstructors(ctx *gin.Context) {
	var req dto.AssignInstructorsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "Invalid assignment data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	slot, err := c.scheduleService.AssignInstructors(ctx, services.AssignInstructorsInput{
		ClassName:   req.ClassName,
		DayOfWeek:   req.DayOfWeek,
		TimeOfDay:   req.TimeOfDay,
		InstructorA: req.InstructorA,
		InstructorB: req.InstructorB,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(slot))
}
