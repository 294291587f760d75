package main

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/config"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/keycloak"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/notification"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/password"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/provision"
	provisionapi "github.com/faintdeception/ruff-registrar-community-sub000/pkg/provision/api"
)

type JwtConfig struct {
	JwtSecret string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
}

type Config struct {
	AppConfig      app.AppConfig
	IdpConfig      config.IdpConfig
	EmailConfig    config.EmailConfig
	PasswordConfig config.PasswordConfig
	JwtConfig      JwtConfig
	DefaultRole    string `env:"PROVISION_DEFAULT_ROLE" env-default:"Member"`
}

func main() {

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	idpClient := keycloak.NewClient(cfg.IdpConfig.ToClientConfig(),
		keycloak.WithGenerator(password.NewGenerator()),
		keycloak.WithPasswordLength(cfg.PasswordConfig.Length()),
	)

	opts := []provision.Option{
		provision.WithDefaultRole(keycloak.Role(cfg.DefaultRole)),
	}

	if cfg.EmailConfig.Enabled {
		notificationManager, err := notification.NewEmailNotificationManager(cfg.EmailConfig.ToSMTPConfig())
		if err != nil {
			slog.Error("Failed creating notification manager", "host", cfg.EmailConfig.Host, "err", err)
			os.Exit(-1)
		}
		opts = append(opts, provision.WithNotificationManager(notificationManager))
	}

	provisionService := provision.NewService(idpClient, opts...)
	provisionHandle := provisionapi.NewHandler(provisionService)

	// The provisioning surface is for the registrar's back end only; every
	// route requires a valid service token.
	tokenAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.JwtSecret), nil)

	server.R.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))

		r.Route("/api/registrar", func(r chi.Router) {
			provisionHandle.Routes(r)
		})
	})

	slog.Info("Provisioner starting",
		"realm", cfg.IdpConfig.Realm,
		"admin_realm", cfg.IdpConfig.AdminRealm,
		"email_enabled", cfg.EmailConfig.Enabled,
	)

	server.Run()
}
