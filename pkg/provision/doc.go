// Package provision orchestrates member account creation against the
// external identity provider.
//
// The registrar's CRUD layer calls this package only: provision a new user
// for an email and name and receive back the external identity plus a
// one-time temporary credential, or deactivate, reactivate, and query an
// existing external identity.
//
// Ordering is deliberate: the remote identity is created first because the
// provider is the source of truth for authentication. If remote creation
// fails there is nothing to compensate. If the caller's local persistence
// fails afterwards, the remote identity is orphaned; this package logs and
// accepts that state rather than attempting reconciliation.
package provision
