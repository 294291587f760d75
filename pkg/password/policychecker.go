package password

import (
	"regexp"
)

// PasswordPolicy defines the requirements for password complexity
type PasswordPolicy struct {
	MinLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
}

// PolicyChecker defines the interface for checking password complexity
type PolicyChecker interface {
	IsComplex(password string) bool
	GetPolicy() *PasswordPolicy
}

// DefaultPolicyChecker implements the PolicyChecker interface
type DefaultPolicyChecker struct {
	policy *PasswordPolicy
}

// NewDefaultPolicyChecker creates a new default policy checker
func NewDefaultPolicyChecker(policy *PasswordPolicy) *DefaultPolicyChecker {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}

	return &DefaultPolicyChecker{
		policy: policy,
	}
}

// IsComplex reports whether a password meets the complexity requirements.
// Stateless and deterministic; an empty or too-short password is never complex.
func (pc *DefaultPolicyChecker) IsComplex(password string) bool {
	if password == "" || len(password) < pc.policy.MinLength {
		return false
	}

	if pc.policy.RequireUppercase && !regexp.MustCompile(`[A-Z]`).MatchString(password) {
		return false
	}

	if pc.policy.RequireLowercase && !regexp.MustCompile(`[a-z]`).MatchString(password) {
		return false
	}

	if pc.policy.RequireDigit && !regexp.MustCompile(`[0-9]`).MatchString(password) {
		return false
	}

	if pc.policy.RequireSpecialChar && !regexp.MustCompile(`[^a-zA-Z0-9]`).MatchString(password) {
		return false
	}

	return true
}

// GetPolicy returns the password policy
func (pc *DefaultPolicyChecker) GetPolicy() *PasswordPolicy {
	return pc.policy
}

// DefaultPasswordPolicy returns a default password policy requiring all four
// character classes
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:          MinLength,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
	}
}
