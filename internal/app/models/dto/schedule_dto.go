package dto

import "github.com/omniafit/omnia-backend/internal/app/models"

// CreateSlotRequest asks for a new ClassSlot. TimeOfDay accepts "HH:MM" or
// "HH:MM:SS". AllowSecondSlot is the explicit opt-in for the ":01" packing
// policy: without it a slot_taken_second_slot decision is still a rejection.
type CreateSlotRequest struct {
	ClassName       string `json:"className" binding:"required" example:"Yoga"`
	DayOfWeek       int    `json:"dayOfWeek" example:"1"`
	TimeOfDay       string `json:"timeOfDay" binding:"required" example:"19:00"`
	InstructorA     string `json:"instructorA" example:"Ana"`
	InstructorB     string `json:"instructorB" example:""`
	AllowSecondSlot bool   `json:"allowSecondSlot" example:"false"`
}

// DeleteSlotRequest identifies a slot by its exact key tuple.
type DeleteSlotRequest struct {
	ClassName string `json:"className" binding:"required" example:"Yoga"`
	DayOfWeek int    `json:"dayOfWeek" example:"1"`
	TimeOfDay string `json:"timeOfDay" binding:"required" example:"19:00:00"`
}

// DeleteSlotResponse reports how many rows the exact-match delete removed.
type DeleteSlotResponse struct {
	Deleted int64 `json:"deleted" example:"1"`
}

// AssignInstructorsRequest attaches up to two instructors by name to an
// existing slot. Empty names unassign the corresponding column.
type AssignInstructorsRequest struct {
	ClassName   string `json:"className" binding:"required" example:"Yoga"`
	DayOfWeek   int    `json:"dayOfWeek" example:"1"`
	TimeOfDay   string `json:"timeOfDay" binding:"required" example:"19:00:00"`
	InstructorA string `json:"instructorA" example:"Ana"`
	InstructorB string `json:"instructorB" example:""`
}

// ConflictDetails lists the slots occupying the requested minute. It is
// returned as the error details on rejected schedule requests.
type ConflictDetails struct {
	Occupants []models.ClassSlot `json:"occupants"`
}
