// Package models defines the client-side data model: the session snapshot,
// the user profile and the analysed documents returned by the service.
package models
