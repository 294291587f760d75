package config

import (
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/keycloak"
)

// IdpConfig holds identity provider connection configuration
type IdpConfig struct {
	BaseURL       string `env:"KEYCLOAK_BASE_URL" env-default:"http://localhost:8080"`
	Realm         string `env:"KEYCLOAK_REALM" env-default:"registrar"`
	AdminRealm    string `env:"KEYCLOAK_ADMIN_REALM" env-default:"master"`
	ClientID      string `env:"KEYCLOAK_CLIENT_ID" env-default:"registrar-api"`
	ClientSecret  string `env:"KEYCLOAK_CLIENT_SECRET"`
	AdminUsername string `env:"KEYCLOAK_ADMIN_USERNAME"`
	AdminPassword string `env:"KEYCLOAK_ADMIN_PASSWORD"`
}

// ToClientConfig converts the config to a keycloak.Config
func (c IdpConfig) ToClientConfig() keycloak.Config {
	return keycloak.Config{
		BaseURL:       c.BaseURL,
		Realm:         c.Realm,
		AdminRealm:    c.AdminRealm,
		ClientID:      c.ClientID,
		ClientSecret:  c.ClientSecret,
		AdminUsername: c.AdminUsername,
		AdminPassword: c.AdminPassword,
	}
}
