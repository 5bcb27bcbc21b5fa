package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/otcheredev/hms-console/internal/models"
)

// DoctorProfile returns the caller's profile; Missing() is true before the first save
func (c *Client) DoctorProfile(ctx context.Context, token string) (models.DoctorProfile, error) {
	return Do[models.DoctorProfile](ctx, c, Request{Op: "doctor_profile", Path: "/doctor/profile", Token: token})
}

func (c *Client) SaveDoctorProfile(ctx context.Context, token string, form models.DoctorProfileForm) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "doctor_profile_save", Method: http.MethodPost, Path: "/doctor/profile", Token: token, Body: form})
}

func (c *Client) DoctorAppointments(ctx context.Context, token string) ([]models.Appointment, error) {
	return Do[[]models.Appointment](ctx, c, Request{Op: "doctor_appointments", Path: "/doctor/appointments", Token: token})
}

// CompleteAppointment marks the appointment completed and records the treatment
func (c *Client) CompleteAppointment(ctx context.Context, token string, id int64, form models.CompletionForm) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{
		Op:     "doctor_complete_appointment",
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/doctor/appointments/%d/complete", id),
		Token:  token,
		Body:   form,
	})
}
