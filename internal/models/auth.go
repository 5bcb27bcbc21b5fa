package models

// TokenResponse is returned by the login endpoints
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ClaimsResponse is GET /get-claims
type ClaimsResponse struct {
	Claims map[string]any `json:"claims"`
}

// UserID reads user_id from the claims; JSON numbers arrive as float64
func (c ClaimsResponse) UserID() (int64, bool) {
	v, ok := c.Claims["user_id"].(float64)
	if !ok || v <= 0 {
		return 0, false
	}
	return int64(v), true
}

// Ack is the generic {message, category} body of mutating endpoints
type Ack struct {
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
	TaskID   string `json:"task_id,omitempty"`
}

type ReportList struct {
	Downloads []string `json:"downloads"`
}
