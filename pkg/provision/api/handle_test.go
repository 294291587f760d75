package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/keycloak"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/provision"
)

const testUserID = "4f5aa28c-7a23-4bb5-8a8e-1a4a31a7a1d2"

type fakeIdp struct {
	createErr error
	exists    bool
}

func (f *fakeIdp) CreateUser(ctx context.Context, email, firstName, lastName string) (*keycloak.CreatedUser, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &keycloak.CreatedUser{
		UserID:            testUserID,
		Username:          email,
		TemporaryPassword: "xQ9$aB3!mK7@",
		IsTemporary:       true,
	}, nil
}

func (f *fakeIdp) UpdateUserRole(ctx context.Context, userID string, role keycloak.Role) error {
	return nil
}

func (f *fakeIdp) DeactivateUser(ctx context.Context, userID string) error { return nil }
func (f *fakeIdp) ReactivateUser(ctx context.Context, userID string) error { return nil }

func (f *fakeIdp) UserExists(ctx context.Context, email string) (bool, error) {
	return f.exists, nil
}

func newTestRouter(idp *fakeIdp) chi.Router {
	handler := NewHandler(provision.NewService(idp))
	r := chi.NewRouter()
	handler.Routes(r)
	return r
}

func TestProvisionMemberEndpoint(t *testing.T) {
	router := newTestRouter(&fakeIdp{})

	body := `{"email":"ada@example.com","first_name":"Ada","last_name":"Lovelace","role":"Educator"}`
	req := httptest.NewRequest(http.MethodPost, "/provision", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ProvisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testUserID, resp.UserID)
	assert.Equal(t, "ada@example.com", resp.Username)
	assert.Equal(t, "xQ9$aB3!mK7@", resp.TemporaryPassword)
	assert.True(t, resp.MustChangePassword)
}

func TestProvisionMemberEndpointInvalidBody(t *testing.T) {
	router := newTestRouter(&fakeIdp{})

	req := httptest.NewRequest(http.MethodPost, "/provision", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProvisionMemberEndpointDuplicate(t *testing.T) {
	idp := &fakeIdp{createErr: errors.New(errors.ErrCodeDuplicateUser, "user already exists: ada@example.com")}
	router := newTestRouter(idp)

	body := `{"email":"ada@example.com","first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/provision", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(errors.ErrCodeDuplicateUser), resp.Code)
}

func TestUserExistsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeIdp{exists: true})

	req := httptest.NewRequest(http.MethodGet, "/users/exists?email=ada@example.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserExistsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Exists)
	assert.Equal(t, "ada@example.com", resp.Email)
}

func TestDeactivateEndpoint(t *testing.T) {
	router := newTestRouter(&fakeIdp{})

	req := httptest.NewRequest(http.MethodPut, "/users/"+testUserID+"/deactivate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testUserID, resp.UserID)
}
