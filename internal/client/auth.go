package client

import (
	"context"
	"net/http"

	"github.com/otcheredev/hms-console/internal/models"
)

// Login exchanges doctor/patient credentials for an access token
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.TokenResponse, error) {
	return Do[models.TokenResponse](ctx, c, Request{Op: "login", Method: http.MethodPost, Path: "/login", Body: creds})
}

func (c *Client) AdminLogin(ctx context.Context, creds models.Credentials) (models.TokenResponse, error) {
	return Do[models.TokenResponse](ctx, c, Request{Op: "admin_login", Method: http.MethodPost, Path: "/admin/login", Body: creds})
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "register", Method: http.MethodPost, Path: "/register", Body: reg})
}

// Claims asks the API to echo the decoded token claims
func (c *Client) Claims(ctx context.Context, token string) (models.ClaimsResponse, error) {
	return Do[models.ClaimsResponse](ctx, c, Request{Op: "get_claims", Path: "/get-claims", Token: token})
}

// Departments is public
func (c *Client) Departments(ctx context.Context) ([]models.Department, error) {
	return Do[[]models.Department](ctx, c, Request{Op: "departments", Path: "/departments"})
}
