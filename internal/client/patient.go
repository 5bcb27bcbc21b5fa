package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/otcheredev/hms-console/internal/models"
)

func (c *Client) PatientProfile(ctx context.Context, token string) (models.PatientProfile, error) {
	return Do[models.PatientProfile](ctx, c, Request{Op: "patient_profile", Path: "/patient/profile", Token: token})
}

func (c *Client) SavePatientProfile(ctx context.Context, token string, form models.PatientProfileForm) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "patient_profile_save", Method: http.MethodPost, Path: "/patient/profile", Token: token, Body: form})
}

// SearchDoctors lists approved, unblocked doctors, optionally narrowed by department and name
func (c *Client) SearchDoctors(ctx context.Context, token string, specializationID int64, q string) ([]models.DoctorProfile, error) {
	query := url.Values{}
	if specializationID > 0 {
		query.Set("specialization_id", strconv.FormatInt(specializationID, 10))
	}
	if q = strings.TrimSpace(q); q != "" {
		query.Set("q", q)
	}
	return Do[[]models.DoctorProfile](ctx, c, Request{Op: "patient_doctors", Path: "/patient/doctors", Query: query, Token: token})
}

func (c *Client) BookAppointment(ctx context.Context, token string, form models.BookingForm) (models.BookingResponse, error) {
	return Do[models.BookingResponse](ctx, c, Request{Op: "patient_book", Method: http.MethodPost, Path: "/patient/appointments/book", Token: token, Body: form})
}

func (c *Client) PatientAppointments(ctx context.Context, token string) ([]models.Appointment, error) {
	return Do[[]models.Appointment](ctx, c, Request{Op: "patient_appointments", Path: "/patient/appointments", Token: token})
}

func (c *Client) CancelAppointment(ctx context.Context, token string, id int64) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "patient_cancel", Method: http.MethodPost, Path: fmt.Sprintf("/patient/appointments/%d/cancel", id), Token: token})
}

func (c *Client) Treatments(ctx context.Context, token string) ([]models.Treatment, error) {
	return Do[[]models.Treatment](ctx, c, Request{Op: "patient_treatments", Path: "/patient/treatments", Token: token})
}

// ExportTreatments queues a CSV export of the caller's treatments
func (c *Client) ExportTreatments(ctx context.Context, token string) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "patient_export", Path: "/patient/export_treatments", Token: token})
}

func (c *Client) DownloadFile(ctx context.Context, token, filename string) (*Download, error) {
	return c.Download(ctx, "report_download", token, "/reports/download/"+url.PathEscape(filename))
}
