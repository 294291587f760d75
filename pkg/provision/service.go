package provision

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/keycloak"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/notification"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/password"
)

// Request describes one new member account to provision. The email address
// doubles as the remote username.
type Request struct {
	Email     string
	FirstName string
	LastName  string
	Role      keycloak.Role
}

// Result is returned to the caller exactly once. The temporary password is
// shown to the administrator a single time; this package keeps no copy, and
// it never appears in logs.
type Result struct {
	UserID             string
	Username           string
	TemporaryPassword  string
	MustChangePassword bool
}

// IdentityProvider is the slice of the admin client the orchestrator uses.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, firstName, lastName string) (*keycloak.CreatedUser, error)
	UpdateUserRole(ctx context.Context, userID string, role keycloak.Role) error
	DeactivateUser(ctx context.Context, userID string) error
	ReactivateUser(ctx context.Context, userID string) error
	UserExists(ctx context.Context, email string) (bool, error)
}

// Service orchestrates account provisioning against the identity provider.
// The registrar's CRUD layer calls only this type; it persists the returned
// user id as its foreign key into the provider.
type Service struct {
	idp                 IdentityProvider
	notificationManager *notification.NotificationManager
	defaultRole         keycloak.Role
}

// Option is a functional option for configuring the Service
type Option func(*Service)

// WithNotificationManager enables the account-created welcome notice
func WithNotificationManager(nm *notification.NotificationManager) Option {
	return func(s *Service) {
		s.notificationManager = nm
	}
}

// WithDefaultRole sets the role assigned when a request leaves Role empty
func WithDefaultRole(role keycloak.Role) Option {
	return func(s *Service) {
		s.defaultRole = role
	}
}

// NewService creates a provisioning service around an identity provider client
func NewService(idp IdentityProvider, opts ...Option) *Service {
	s := &Service{
		idp:         idp,
		defaultRole: keycloak.RoleMember,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ProvisionMember creates the remote identity first, then assigns the realm
// role. The caller persists its local record only after this returns; if that
// local write fails, the remote identity is orphaned and reconciliation is
// the caller's responsibility.
//
// Errors pass through with their codes intact so the caller can distinguish a
// duplicate email from a protocol or configuration failure.
func (s *Service) ProvisionMember(ctx context.Context, request Request) (*Result, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	role := request.Role
	if role == "" {
		role = s.defaultRole
	}

	created, err := s.idp.CreateUser(ctx, request.Email, request.FirstName, request.LastName)
	if err != nil {
		return nil, err
	}

	if err := s.idp.UpdateUserRole(ctx, created.UserID, role); err != nil {
		// The remote account now exists without a role. Surface the failure
		// with the created id attached so the caller can retry the assignment
		// or flag the account for cleanup.
		slog.Warn("Role assignment failed after user creation", "user_id", created.UserID, "role", role, "err", err)
		var coded *errors.Error
		if stderrors.As(err, &coded) {
			return nil, coded.WithDetail("user_id", created.UserID)
		}
		return nil, err
	}

	// Advisory telemetry: rating only, never the credential.
	slog.Info("Provisioned member account",
		"user_id", created.UserID,
		"username", created.Username,
		"role", role,
		"password_strength", password.Score(created.TemporaryPassword).String(),
	)

	s.sendNotice(notification.AccountCreatedNotice, request.Email, request.FirstName, created.Username)

	return &Result{
		UserID:             created.UserID,
		Username:           created.Username,
		TemporaryPassword:  created.TemporaryPassword,
		MustChangePassword: created.IsTemporary,
	}, nil
}

// Deactivate disables the remote account.
func (s *Service) Deactivate(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "user id cannot be empty")
	}
	return s.idp.DeactivateUser(ctx, userID)
}

// Reactivate re-enables a previously disabled remote account.
func (s *Service) Reactivate(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "user id cannot be empty")
	}
	return s.idp.ReactivateUser(ctx, userID)
}

// Exists reports whether the email is already registered on the provider.
// The result can race a concurrent create; callers must still treat a
// duplicate-user error from ProvisionMember as the authoritative answer.
func (s *Service) Exists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, errors.New(errors.ErrCodeInvalidInput, "email cannot be empty")
	}
	return s.idp.UserExists(ctx, email)
}

func (r Request) validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.Newf(errors.ErrCodeInvalidInput, "invalid email: %q", r.Email)
	}
	if r.FirstName == "" {
		return errors.New(errors.ErrCodeInvalidInput, "first name cannot be empty")
	}
	if r.LastName == "" {
		return errors.New(errors.ErrCodeInvalidInput, "last name cannot be empty")
	}
	return nil
}

// sendNotice is best effort: the remote side effect is already committed, so
// a delivery failure is logged and not returned.
func (s *Service) sendNotice(noticeType notification.NoticeType, email, firstName, username string) {
	if s.notificationManager == nil {
		return
	}

	data := notification.NotificationData{
		To: email,
		Data: map[string]string{
			"FirstName": firstName,
			"Username":  username,
		},
	}

	if err := s.notificationManager.Send(noticeType, data); err != nil {
		slog.Warn("Failed to send notice", "notice", noticeType, "username", username, "err", err)
	}
}
