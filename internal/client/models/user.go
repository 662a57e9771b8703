// Package models defines the data structures exchanged with the brochure
// backend and cached locally by the client.
package models

// User is the profile record returned by the login and validate endpoints.
// The client treats it as mostly opaque; only Email is displayed.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}
