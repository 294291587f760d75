package config

import (
	"log/slog"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/password"
)

// PasswordConfig holds temporary password generation configuration
type PasswordConfig struct {
	GeneratedLength int `env:"PASSWORD_GENERATED_LENGTH" env-default:"12"`
}

// Length returns the configured generated-password length, clamped up to the
// generator's minimum so a misconfigured deployment degrades loudly but safely.
func (c PasswordConfig) Length() int {
	if c.GeneratedLength < password.MinLength {
		slog.Warn("Configured password length below minimum, using minimum",
			"configured", c.GeneratedLength, "minimum", password.MinLength)
		return password.MinLength
	}
	return c.GeneratedLength
}
