package models

import "github.com/omniafit/omnia-backend/internal/pkg/timeofday"

// ClassSlot is one scheduled occurrence of a class at a specific weekday
// and time. The key tuple (ClassName, DayOfWeek, StartTime) has no
// update-in-place; rescheduling is delete plus recreate.
type ClassSlot struct {
	ID          int64               `json:"id"`
	ClassName   string              `json:"className"`
	DayOfWeek   int                 `json:"dayOfWeek"`
	StartTime   timeofday.TimeOfDay `json:"timeOfDay" swaggertype:"string" example:"19:00:00"`
	InstructorA *int64              `json:"instructorA"`
	InstructorB *int64              `json:"instructorB"`
}
