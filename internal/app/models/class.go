package models

// Class is the catalog entry for a class: display data plus the photo URL
// held by the external photo store. Scheduling occurrences live in ClassSlot.
type Class struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}
