// Package cryptography implements the credential primitives used by the account
// service: bcrypt password hashing and HS256 signed access tokens.
package cryptography
