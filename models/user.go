package models

import "encoding/json"

// User is the profile summary the backend returns from login and from
// /users/{id}. Only ID is structurally required; unknown fields are ignored.
type User struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name,omitempty"`
	Email    string      `json:"email,omitempty"`
	Username string      `json:"username,omitempty"`
}
