package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/otcheredev/hms-console/internal/models"
)

// CustomerDashboard lists services (optionally of one type) and the caller's requests
func (c *Client) CustomerDashboard(ctx context.Context, token, serviceType string) (models.CustomerDashboard, error) {
	var query url.Values
	if serviceType != "" {
		query = url.Values{"service_type": {serviceType}}
	}
	return Do[models.CustomerDashboard](ctx, c, Request{Op: "customer_dashboard", Path: "/customer/dashboard", Query: query, Token: token})
}

func (c *Client) CreateServiceRequest(ctx context.Context, token string, serviceID int64) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "customer_create_request", Method: http.MethodPost, Path: fmt.Sprintf("/customer/create_service_request/%d", serviceID), Token: token})
}

func (c *Client) CloseServiceRequest(ctx context.Context, token string, id int64) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "customer_close_request", Method: http.MethodPost, Path: fmt.Sprintf("/customer/close_service_request/%d", id), Token: token})
}

func (c *Client) ServiceRequest(ctx context.Context, token string, id int64) (models.ServiceRequestDetail, error) {
	return Do[models.ServiceRequestDetail](ctx, c, Request{Op: "customer_request", Path: fmt.Sprintf("/customer/close_service_request/%d", id), Token: token})
}

// ReviewServiceRequest closes a request with remarks and a rating
func (c *Client) ReviewServiceRequest(ctx context.Context, token string, form models.ReviewForm) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{
		Op:     "customer_review_request",
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/customer/close_service_request/%d", form.RequestID),
		Token:  token,
		Body:   form,
	})
}

func (c *Client) SearchProfessionals(ctx context.Context, token string, form models.ServiceSearchForm) (models.ProfessionalSearch, error) {
	return Do[models.ProfessionalSearch](ctx, c, Request{Op: "customer_search", Method: http.MethodPost, Path: "/customer/search", Token: token, Body: form})
}

func (c *Client) ServiceRequestSummary(ctx context.Context, token string, userID int64) ([]models.SummaryPoint, error) {
	return Do[[]models.SummaryPoint](ctx, c, Request{Op: "customer_summary", Path: fmt.Sprintf("/customer/summary/service_requests/%d", userID), Token: token})
}
