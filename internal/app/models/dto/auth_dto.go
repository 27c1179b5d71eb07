package dto

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// SessionResponse describes the authenticated session behind the cookie.
type SessionResponse struct {
	User string `json:"user" example:"admin"`
	Role string `json:"role" example:"admin"`
}
