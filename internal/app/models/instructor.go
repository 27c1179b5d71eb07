package models

// Instructor leads classes. Name doubles as the case-insensitive lookup key
// used by schedule requests; PhotoURL is an opaque external pointer.
type Instructor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}
