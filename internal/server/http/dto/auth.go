package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SessionResponse describes the authenticated account.
type SessionResponse struct {
	UserID int64  `json:"usuario_id"`
	Login  string `json:"login"`
	Admin  bool   `json:"is_admin"`
}
