package provision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/keycloak"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/notification"
)

const testUserID = "4f5aa28c-7a23-4bb5-8a8e-1a4a31a7a1d2"

// fakeIdp records calls and returns scripted results.
type fakeIdp struct {
	createErr error
	roleErr   error
	exists    bool

	createdEmails []string
	assignedRoles []keycloak.Role
	deactivated   []string
	reactivated   []string
}

func (f *fakeIdp) CreateUser(ctx context.Context, email, firstName, lastName string) (*keycloak.CreatedUser, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdEmails = append(f.createdEmails, email)
	return &keycloak.CreatedUser{
		UserID:            testUserID,
		Username:          email,
		TemporaryPassword: "xQ9$aB3!mK7@",
		IsTemporary:       true,
	}, nil
}

func (f *fakeIdp) UpdateUserRole(ctx context.Context, userID string, role keycloak.Role) error {
	if f.roleErr != nil {
		return f.roleErr
	}
	f.assignedRoles = append(f.assignedRoles, role)
	return nil
}

func (f *fakeIdp) DeactivateUser(ctx context.Context, userID string) error {
	f.deactivated = append(f.deactivated, userID)
	return nil
}

func (f *fakeIdp) ReactivateUser(ctx context.Context, userID string) error {
	f.reactivated = append(f.reactivated, userID)
	return nil
}

func (f *fakeIdp) UserExists(ctx context.Context, email string) (bool, error) {
	return f.exists, nil
}

func validRequest() Request {
	return Request{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      keycloak.RoleEducator,
	}
}

func TestProvisionMember(t *testing.T) {
	idp := &fakeIdp{}
	service := NewService(idp)

	result, err := service.ProvisionMember(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, testUserID, result.UserID)
	assert.Equal(t, "ada@example.com", result.Username)
	assert.Equal(t, "xQ9$aB3!mK7@", result.TemporaryPassword)
	assert.True(t, result.MustChangePassword)

	assert.Equal(t, []string{"ada@example.com"}, idp.createdEmails)
	assert.Equal(t, []keycloak.Role{keycloak.RoleEducator}, idp.assignedRoles)
}

func TestProvisionMemberDefaultRole(t *testing.T) {
	idp := &fakeIdp{}
	service := NewService(idp)

	request := validRequest()
	request.Role = ""
	_, err := service.ProvisionMember(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, []keycloak.Role{keycloak.RoleMember}, idp.assignedRoles)
}

func TestProvisionMemberValidation(t *testing.T) {
	idp := &fakeIdp{}
	service := NewService(idp)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty email", func(r *Request) { r.Email = "" }},
		{"malformed email", func(r *Request) { r.Email = "not-an-email" }},
		{"empty first name", func(r *Request) { r.FirstName = "" }},
		{"empty last name", func(r *Request) { r.LastName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validRequest()
			tt.mutate(&request)

			_, err := service.ProvisionMember(context.Background(), request)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
		})
	}

	assert.Empty(t, idp.createdEmails, "invalid requests must not reach the provider")
}

// A duplicate from the provider passes through unmodified; the caller maps it
// to "this email is already registered".
func TestProvisionMemberDuplicatePassthrough(t *testing.T) {
	idp := &fakeIdp{createErr: errors.New(errors.ErrCodeDuplicateUser, "user already exists: ada@example.com")}
	service := NewService(idp)

	_, err := service.ProvisionMember(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDuplicateUser))
	assert.Empty(t, idp.assignedRoles, "no further calls after a failed create")
}

func TestProvisionMemberRoleFailureCarriesUserID(t *testing.T) {
	idp := &fakeIdp{roleErr: errors.New(errors.ErrCodeRoleNotFound, "realm role not found: educator")}
	service := NewService(idp)

	_, err := service.ProvisionMember(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRoleNotFound))

	var coded *errors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, testUserID, coded.Details["user_id"], "caller needs the orphaned account id")
}

func TestProvisionMemberSendsAccountCreatedNotice(t *testing.T) {
	mock := &notification.MockNotifier{}
	manager := notification.NewNotificationManager()
	manager.RegisterNotifier(notification.EmailSystem, mock)
	require.NoError(t, manager.RegisterNotification(notification.AccountCreatedNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Your co-op account is ready",
		Text:    "Hello {{.FirstName}}, your username is {{.Username}}.",
	}))

	idp := &fakeIdp{}
	service := NewService(idp, WithNotificationManager(manager))

	result, err := service.ProvisionMember(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, mock.SentNotifications, 1)
	sent := mock.SentNotifications[0]
	assert.Equal(t, "ada@example.com", sent.To)
	assert.Equal(t, "ada@example.com", sent.Data["Username"])
	assert.NotContains(t, sent.Data, "Password", "notices never carry credentials")
	assert.NotContains(t, sent.Body, result.TemporaryPassword)
}

func TestDeactivateReactivate(t *testing.T) {
	idp := &fakeIdp{}
	service := NewService(idp)

	require.NoError(t, service.Deactivate(context.Background(), testUserID))
	require.NoError(t, service.Reactivate(context.Background(), testUserID))

	assert.Equal(t, []string{testUserID}, idp.deactivated)
	assert.Equal(t, []string{testUserID}, idp.reactivated)

	err := service.Deactivate(context.Background(), "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestExists(t *testing.T) {
	idp := &fakeIdp{exists: true}
	service := NewService(idp)

	exists, err := service.Exists(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = service.Exists(context.Background(), "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}
