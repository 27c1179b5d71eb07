package dto

// CreateClassRequest is the multipart form for a new catalog entry. The
// photo part is handled separately by the controller.
type CreateClassRequest struct {
	Name        string `form:"name" binding:"required" example:"Yoga"`
	Description string `form:"description" binding:"required" example:"Hatha yoga for all levels"`
}

// DeleteClassRequest identifies catalog entries by case-insensitive name.
type DeleteClassRequest struct {
	Name string `json:"name" binding:"required" example:"Yoga"`
}

// PhotoCleanupResult reports the best-effort external photo deletion that
// follows a committed row delete. It never affects the delete outcome.
type PhotoCleanupResult struct {
	PhotoURL string `json:"photoUrl"`
	Status   string `json:"status" example:"ok"` // ok, skip or error
	Error    string `json:"error,omitempty"`
}

// DeleteClassResponse pairs the committed row deletion with the independent
// photo cleanup report.
type DeleteClassResponse struct {
	Deleted      int64                `json:"deleted" example:"1"`
	SlotsDeleted int64                `json:"slotsDeleted" example:"3"`
	Name         string               `json:"name" example:"Yoga"`
	PhotoCleanup []PhotoCleanupResult `json:"photoCleanup"`
}
