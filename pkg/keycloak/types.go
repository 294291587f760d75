package keycloak

// Role is the registrar's domain role for an account holder.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleEducator      Role = "Educator"
	RoleMember        Role = "Member"
)

// realmRoleNames maps domain roles to the realm role names configured on the
// identity provider.
var realmRoleNames = map[Role]string{
	RoleAdministrator: "admin",
	RoleEducator:      "educator",
	RoleMember:        "student",
}

// Required actions the provider enforces on first login.
const (
	RequiredActionUpdatePassword = "UPDATE_PASSWORD"
	RequiredActionVerifyEmail    = "VERIFY_EMAIL"
)

const credentialTypePassword = "password"

// UserRepresentation is the provider's user payload for creation and search.
type UserRepresentation struct {
	ID              string                     `json:"id,omitempty"`
	Username        string                     `json:"username"`
	Email           string                     `json:"email"`
	FirstName       string                     `json:"firstName"`
	LastName        string                     `json:"lastName"`
	Enabled         bool                       `json:"enabled"`
	EmailVerified   bool                       `json:"emailVerified"`
	Credentials     []CredentialRepresentation `json:"credentials,omitempty"`
	RequiredActions []string                   `json:"requiredActions,omitempty"`
}

// CredentialRepresentation is a single credential attached to a user.
// Temporary credentials must be changed on first login.
type CredentialRepresentation struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// RoleRepresentation is the provider's realm role payload.
type RoleRepresentation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// tokenResponse is the provider's token endpoint response. Only access_token
// matters here; a missing one is a protocol failure, not a nil dereference.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// enabledUpdate is the partial user update used to enable or disable an
// account.
type enabledUpdate struct {
	Enabled bool `json:"enabled"`
}

// CreatedUser is returned by CreateUser. The temporary password is handed to
// the caller exactly once and held nowhere else.
type CreatedUser struct {
	UserID            string
	Username          string
	TemporaryPassword string
	IsTemporary       bool
}
