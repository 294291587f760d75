package api

// ProvisionRequest represents the request to provision a new member account
type ProvisionRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}

// ProvisionResponse is returned once per provisioned account. The temporary
// password appears here and nowhere else; the front end shows it to the
// administrator a single time.
type ProvisionResponse struct {
	UserID             string `json:"user_id"`
	Username           string `json:"username"`
	TemporaryPassword  string `json:"temporary_password,omitempty"`
	MustChangePassword bool   `json:"must_change_password"`
}

// UserExistsResponse reports the advisory exact-email existence check
type UserExistsResponse struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}

// StatusResponse acknowledges a deactivate or reactivate call
type StatusResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
