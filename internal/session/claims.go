package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the display fields carried in the API's access token
type Claims struct {
	Subject  string
	UserID   int64
	Role     Role
	Redirect Landing
}

// DecodeClaims reads the token payload without verifying the signature.
// The console never trusts these values for access; the API re-checks every call.
func DecodeClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("failed to decode token: %w", err)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if role, ok := mc["role"].(string); ok {
		c.Role = ParseRole(role)
	}
	if redirect, ok := mc["redirect"].(string); ok {
		c.Redirect = ParseLanding(redirect)
	}
	for _, key := range []string{"user_id", "admin_user_id"} {
		if id, ok := mc[key].(float64); ok {
			c.UserID = int64(id)
			break
		}
	}
	return c, nil
}
