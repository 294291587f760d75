// Package keycloak drives the identity provider's administrative REST API
// for one configured realm.
//
// The client acquires a fresh admin bearer token before every operation using
// an ordered list of strategies: a resource-owner password grant with the
// fixed admin-cli client against the admin realm, then a client-credentials
// grant with the application's own client against the application realm.
// Tokens are deliberately never cached; the extra round-trip per operation is
// a simplicity trade-off, not an oversight.
//
// # Operations
//
//   - CreateUser - create an account with a generated temporary credential
//   - UpdateUserRole - map a domain role to a realm role and assign it
//   - DeactivateUser / ReactivateUser - toggle the account's enabled flag
//   - UserExists - exact-email search (advisory; 409 on create is the truth)
//
// # Basic Usage
//
//	client := keycloak.NewClient(keycloak.Config{
//		BaseURL:      "https://idp.example.com",
//		Realm:        "registrar",
//		ClientID:     "registrar-api",
//		ClientSecret: secret,
//	})
//
//	created, err := client.CreateUser(ctx, "member@example.com", "Ada", "Lovelace")
//
// All payloads are explicit structs with strict decoding; a token response
// without an access_token or a 201 without a Location header is a typed
// protocol error, never a nil dereference.
package keycloak
