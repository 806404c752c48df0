// Package common contains constants and helpers shared by the client packages.
package common

const (
	// AuthorizationHeader carries the bearer credential on authenticated calls.
	AuthorizationHeader = "Authorization"

	// BearerScheme prefixes the credential in AuthorizationHeader.
	BearerScheme = "Bearer"

	// RequestIDHeader tags each outgoing request so it can be found in service logs.
	RequestIDHeader = "X-Request-ID"
)
