// Package password generates and evaluates temporary account passwords.
//
// The generator draws from a cryptographically secure random source and
// guarantees at least one character from each of four classes (uppercase,
// lowercase, digit, special). Ambiguous glyphs are excluded from the
// alphabets. Complexity checking and strength scoring are pure functions with
// no side effects; strength is advisory telemetry and never gates anything.
//
// # Basic Usage
//
//	import "github.com/faintdeception/ruff-registrar-community-sub000/pkg/password"
//
//	generator := password.NewGenerator()
//	pwd, err := generator.Generate(12)
//
//	checker := password.NewDefaultPolicyChecker(nil)
//	ok := checker.IsComplex(pwd) // always true for generated passwords
//
//	rating := password.Score(pwd)
package password
