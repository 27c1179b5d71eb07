package dto

// CreateInstructorRequest is the multipart form for a new instructor. The
// photo part is optional and handled by the controller.
type CreateInstructorRequest struct {
	Name string `form:"name" binding:"required" example:"Ana"`
}

// DeleteInstructorRequest identifies an instructor by case-insensitive name.
type DeleteInstructorRequest struct {
	Name string `json:"name" binding:"required" example:"Ana"`
}

// DeleteInstructorResponse reports the cascade outcome: the instructor row
// is gone, referencing slots had both instructor columns nulled, and photo
// cleanup ran best-effort after the commit.
type DeleteInstructorResponse struct {
	Deleted      int64               `json:"deleted" example:"1"`
	SlotsCleared int64               `json:"slotsCleared" example:"2"`
	PhotoCleanup *PhotoCleanupResult `json:"photoCleanup,omitempty"`
}
