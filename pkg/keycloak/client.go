package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/password"
)

// DefaultAdminRealm is the provider's bootstrap realm used for the admin
// password grant, distinct from the application realm.
const DefaultAdminRealm = "master"

// adminCLIClientID is the provider's fixed client id for the admin password
// grant.
const adminCLIClientID = "admin-cli"

// DefaultPasswordLength is the length of generated temporary passwords.
const DefaultPasswordLength = 12

// Config holds the connection settings for one realm of the identity
// provider. The value is copied into the client at construction; there is no
// ambient configuration access.
type Config struct {
	BaseURL      string
	Realm        string
	AdminRealm   string // defaults to DefaultAdminRealm
	ClientID     string
	ClientSecret string

	// Admin credentials for the password-grant bootstrap; optional when a
	// client secret is configured.
	AdminUsername string
	AdminPassword string
}

// Client drives the identity provider's administrative REST API for one
// configured realm. All operations are synchronous; callers control timeouts
// through the context and the injected http.Client.
type Client struct {
	config         Config
	httpClient     *http.Client
	generator      *password.Generator
	passwordLength int
}

// Option is a function that configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for provider calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithGenerator sets the temporary password generator
func WithGenerator(generator *password.Generator) Option {
	return func(c *Client) {
		c.generator = generator
	}
}

// WithPasswordLength sets the length of generated temporary passwords
func WithPasswordLength(length int) Option {
	return func(c *Client) {
		c.passwordLength = length
	}
}

// NewClient creates a client for the given realm configuration
func NewClient(config Config, opts ...Option) *Client {
	if config.AdminRealm == "" {
		config.AdminRealm = DefaultAdminRealm
	}

	c := &Client{
		config:         config,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		generator:      password.NewGenerator(),
		passwordLength: DefaultPasswordLength,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// tokenStrategy is one way to obtain an admin access token. Strategies are
// tried in order until one succeeds; adding a strategy means appending here,
// not restructuring conditionals.
type tokenStrategy struct {
	name    string
	usable  func() bool
	acquire func(ctx context.Context) (string, error)
}

func (c *Client) tokenStrategies() []tokenStrategy {
	return []tokenStrategy{
		{
			name:    "admin-password",
			usable:  func() bool { return c.config.AdminUsername != "" && c.config.AdminPassword != "" },
			acquire: c.adminPasswordToken,
		},
		{
			name:    "client-credentials",
			usable:  func() bool { return c.config.ClientSecret != "" },
			acquire: c.clientCredentialsToken,
		},
	}
}

// GetAdminAccessToken acquires a fresh admin bearer token. Tokens are
// short-lived and never cached; every admin operation calls this again.
func (c *Client) GetAdminAccessToken(ctx context.Context) (string, error) {
	var lastErr error

	for _, strategy := range c.tokenStrategies() {
		if !strategy.usable() {
			continue
		}

		token, err := strategy.acquire(ctx)
		if err != nil {
			slog.Warn("Admin token strategy failed", "strategy", strategy.name, "err", err)
			lastErr = err
			continue
		}

		return token, nil
	}

	if lastErr != nil {
		return "", lastErr
	}

	return "", errors.New(errors.ErrCodeConfiguration, "no admin credentials or client secret configured for token acquisition")
}

// adminPasswordToken posts a resource-owner password grant with the fixed
// admin-cli client id against the admin realm.
func (c *Client) adminPasswordToken(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.config.BaseURL, c.config.AdminRealm)

	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("client_id", adminCLIClientID)
	data.Set("username", c.config.AdminUsername)
	data.Set("password", c.config.AdminPassword)

	return c.requestToken(ctx, endpoint, data)
}

// clientCredentialsToken posts a client-credentials grant with the
// application's own client id and secret against the application realm.
func (c *Client) clientCredentialsToken(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.config.BaseURL, c.config.Realm)

	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", c.config.ClientID)
	data.Set("client_secret", c.config.ClientSecret)

	return c.requestToken(ctx, endpoint, data)
}

func (c *Client) requestToken(ctx context.Context, endpoint string, data url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrCodeProtocol, "token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeProtocol, "failed to parse token response")
	}

	if token.AccessToken == "" {
		return "", errors.New(errors.ErrCodeProtocol, "token response missing access_token")
	}

	return token.AccessToken, nil
}

// CreateUser creates a remote account with a generated temporary credential.
// The username is the email address. The returned temporary password is not
// retained or logged by this package.
func (c *Client) CreateUser(ctx context.Context, email, firstName, lastName string) (*CreatedUser, error) {
	token, err := c.GetAdminAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	temporaryPassword, err := c.generator.Generate(c.passwordLength)
	if err != nil {
		return nil, err
	}

	user := UserRepresentation{
		Username:      email,
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		Enabled:       true,
		EmailVerified: false,
		Credentials: []CredentialRepresentation{
			{
				Type:      credentialTypePassword,
				Value:     temporaryPassword,
				Temporary: true,
			},
		},
		RequiredActions: []string{RequiredActionUpdatePassword, RequiredActionVerifyEmail},
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users", c.config.BaseURL, c.config.Realm)
	resp, body, err := c.do(ctx, http.MethodPost, endpoint, token, payload)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		// fall through to id extraction
	case http.StatusConflict:
		return nil, errors.Newf(errors.ErrCodeDuplicateUser, "user already exists: %s", email)
	default:
		return nil, errors.Newf(errors.ErrCodeProtocol, "user creation failed with status %d: %s", resp.StatusCode, string(body))
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return nil, errors.New(errors.ErrCodeProtocol, "user creation response missing Location header")
	}

	userID := location[strings.LastIndex(location, "/")+1:]
	if _, err := uuid.Parse(userID); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeProtocol, "user creation Location header carries no user id: %s", location)
	}

	slog.Info("Created identity provider user", "user_id", userID, "username", email)

	return &CreatedUser{
		UserID:            userID,
		Username:          email,
		TemporaryPassword: temporaryPassword,
		IsTemporary:       true,
	}, nil
}

// UpdateUserRole assigns the realm role mapped from the domain role to the
// user. Roles outside the mapping table fail before any network call.
func (c *Client) UpdateUserRole(ctx context.Context, userID string, role Role) error {
	realmRole, ok := realmRoleNames[role]
	if !ok {
		return errors.Newf(errors.ErrCodeUnsupportedRole, "no realm role mapping for role %q", role)
	}

	token, err := c.GetAdminAccessToken(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/roles/%s", c.config.BaseURL, c.config.Realm, url.PathEscape(realmRole))
	resp, body, err := c.do(ctx, http.MethodGet, endpoint, token, nil)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Newf(errors.ErrCodeRoleNotFound, "realm role not found: %s", realmRole)
	case resp.StatusCode != http.StatusOK:
		return errors.Newf(errors.ErrCodeProtocol, "role lookup failed with status %d: %s", resp.StatusCode, string(body))
	}

	var roleRep RoleRepresentation
	if err := json.Unmarshal(body, &roleRep); err != nil {
		return errors.Wrapf(err, errors.ErrCodeProtocol, "failed to parse role representation for %s", realmRole)
	}

	payload, err := json.Marshal([]RoleRepresentation{roleRep})
	if err != nil {
		return fmt.Errorf("failed to marshal role mapping payload: %w", err)
	}

	endpoint = fmt.Sprintf("%s/admin/realms/%s/users/%s/role-mappings/realm", c.config.BaseURL, c.config.Realm, url.PathEscape(userID))
	resp, body, err = c.do(ctx, http.MethodPost, endpoint, token, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Newf(errors.ErrCodeProtocol, "role assignment failed with status %d: %s", resp.StatusCode, string(body))
	}

	slog.Info("Assigned realm role", "user_id", userID, "role", realmRole)
	return nil
}

// DeactivateUser disables the remote account. Disabling an already-disabled
// user is a no-op on the provider side.
func (c *Client) DeactivateUser(ctx context.Context, userID string) error {
	return c.setUserEnabled(ctx, userID, false)
}

// ReactivateUser re-enables a previously disabled remote account.
func (c *Client) ReactivateUser(ctx context.Context, userID string) error {
	return c.setUserEnabled(ctx, userID, true)
}

func (c *Client) setUserEnabled(ctx context.Context, userID string, enabled bool) error {
	token, err := c.GetAdminAccessToken(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(enabledUpdate{Enabled: enabled})
	if err != nil {
		return fmt.Errorf("failed to marshal user update payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s", c.config.BaseURL, c.config.Realm, url.PathEscape(userID))
	resp, body, err := c.do(ctx, http.MethodPut, endpoint, token, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Newf(errors.ErrCodeProtocol, "user update failed with status %d: %s", resp.StatusCode, string(body))
	}

	slog.Info("Updated user enabled state", "user_id", userID, "enabled", enabled)
	return nil
}

// UserExists reports whether a user with exactly this email exists on the
// provider. The check is advisory: creation can still race it, and the
// provider's 409 on create is the authoritative uniqueness signal.
func (c *Client) UserExists(ctx context.Context, email string) (bool, error) {
	token, err := c.GetAdminAccessToken(ctx)
	if err != nil {
		return false, err
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users?email=%s&exact=true", c.config.BaseURL, c.config.Realm, url.QueryEscape(email))
	resp, body, err := c.do(ctx, http.MethodGet, endpoint, token, nil)
	if err != nil {
		return false, err
	}

	if resp.StatusCode != http.StatusOK {
		return false, errors.Newf(errors.ErrCodeProtocol, "user search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var users []UserRepresentation
	if err := json.Unmarshal(body, &users); err != nil {
		return false, errors.Wrap(err, errors.ErrCodeProtocol, "failed to parse user search response")
	}

	return len(users) > 0, nil
}

// do performs one bearer-authenticated JSON request and returns the response
// with its fully read body.
func (c *Client) do(ctx context.Context, method, endpoint, token string, payload []byte) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make %s request: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, body, nil
}
