package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/otcheredev/hms-console/internal/models"
)

func (c *Client) AdminDashboard(ctx context.Context, token string) (models.DashboardStats, error) {
	return Do[models.DashboardStats](ctx, c, Request{Op: "admin_dashboard", Path: "/admin/dashboard", Token: token})
}

func (c *Client) AdminProfile(ctx context.Context, token string) (models.AdminProfile, error) {
	return Do[models.AdminProfile](ctx, c, Request{Op: "admin_profile", Path: "/admin/profile", Token: token})
}

func (c *Client) Doctors(ctx context.Context, token string) ([]models.Doctor, error) {
	return Do[[]models.Doctor](ctx, c, Request{Op: "admin_doctors", Path: "/admin/doctors", Token: token})
}

func (c *Client) CreateDoctor(ctx context.Context, token string, d models.NewDoctor) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "admin_create_doctor", Method: http.MethodPost, Path: "/admin/doctors", Token: token, Body: d})
}

func (c *Client) Doctor(ctx context.Context, token string, id int64) (models.DoctorDetail, error) {
	return Do[models.DoctorDetail](ctx, c, Request{Op: "admin_doctor", Path: fmt.Sprintf("/admin/doctors/%d", id), Token: token})
}

func (c *Client) UpdateDoctor(ctx context.Context, token string, id int64, u models.DoctorUpdate) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "admin_update_doctor", Method: http.MethodPut, Path: fmt.Sprintf("/admin/doctors/%d", id), Token: token, Body: u})
}

func (c *Client) DeleteDoctor(ctx context.Context, token string, id int64) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "admin_delete_doctor", Method: http.MethodDelete, Path: fmt.Sprintf("/admin/doctors/%d", id), Token: token})
}

func (c *Client) Patients(ctx context.Context, token string) ([]models.Patient, error) {
	return Do[[]models.Patient](ctx, c, Request{Op: "admin_patients", Path: "/admin/patients", Token: token})
}

// PatientProfileByID looks up another user's patient profile
func (c *Client) PatientProfileByID(ctx context.Context, token string, id int64) (models.PatientProfile, error) {
	return Do[models.PatientProfile](ctx, c, Request{Op: "patient_profile_by_id", Path: fmt.Sprintf("/patient/profile/%d", id), Token: token})
}

func (c *Client) Appointments(ctx context.Context, token string) ([]models.Appointment, error) {
	return Do[[]models.Appointment](ctx, c, Request{Op: "admin_appointments", Path: "/admin/appointments", Token: token})
}

// SetUserStatus approves, rejects, blocks or unblocks any user
func (c *Client) SetUserStatus(ctx context.Context, token string, id int64, action models.UserAction) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "admin_block_user", Method: http.MethodPost, Path: fmt.Sprintf("/admin/block_user/%d", id), Token: token, Body: action})
}

// TriggerExport starts the asynchronous service-request export for a professional
func (c *Client) TriggerExport(ctx context.Context, token string, professionalID int64) (models.Ack, error) {
	return Do[models.Ack](ctx, c, Request{Op: "admin_export", Path: fmt.Sprintf("/admin/export/%d", professionalID), Token: token})
}

func (c *Client) Reports(ctx context.Context, token string) (models.ReportList, error) {
	return Do[models.ReportList](ctx, c, Request{Op: "admin_reports", Path: "/admin/reports/list", Token: token})
}

func (c *Client) DownloadReport(ctx context.Context, token, filename string) (*Download, error) {
	return c.Download(ctx, "admin_report_download", token, "/admin/reports/download/"+url.PathEscape(filename))
}
