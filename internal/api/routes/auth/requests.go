package auth

// CreateSessionRequest is the identity profile asserted by the upstream
// authentication provider after it has verified the user.
type CreateSessionRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image" validate:"omitempty,url"`
}
