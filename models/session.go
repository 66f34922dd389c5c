package models

// Session struct for storing session data. AccessToken is the bearer token
// issued by the backend at login; User is the profile the backend returned
// alongside it. Flash holds a one-time notice shown on the next page render.
type Session struct {
	Token        string `json:"token"`
	AccessToken  string `json:"access_token"`
	User         *User  `json:"user,omitempty"`
	Flash        string `json:"flash,omitempty"`
	CreatedAt    string `json:"created_at"`
	ExpiresAt    string `json:"expires_at"`
	LastActivity string `json:"last_activity"`
	UserAgent    string `json:"user_agent"`
	IPAddress    string `json:"ip_address"`
}
