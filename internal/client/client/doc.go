// Package client talks to the document analysis service.
//
// # Overview
//
// Gateway is the HTTP transport. It resolves paths against the configured
// base URL and tags requests with X-Request-ID. On authenticated calls it attaches
// "Authorization: Bearer <credential>" when a credential is stored. It never
// retries.
//
// HTTPClient implements the typed Client API (register, login, profile,
// documents, upload, export, deletion) on top of Gateway.
//
// # Error Handling
//
// Every failure is a *NetworkError whose Kind tells transport failures,
// auth rejections (401/403), missing resources (404), other service errors
// and undecodable bodies apart. Callers match with errors.Is against
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrService and
// ErrMalformedResponse, or take the message with errors.As.
//
// Both types are safe for concurrent use.
package client
