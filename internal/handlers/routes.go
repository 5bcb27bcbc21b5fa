package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otcheredev/hms-console/internal/router"
)

// Pages mounts every console page on r. limit throttles the credential
// POSTs and may be nil. The session and guard middlewares must already be
// applied to r.
func (h *Handler) Pages(r chi.Router, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Get(router.PathHome, h.Home)
	r.Get(router.PathLogin, h.LoginPage)
	r.With(limit).Post(router.PathLogin, h.Login)
	r.Get(router.PathAdminLogin, h.AdminLoginPage)
	r.With(limit).Post(router.PathAdminLogin, h.AdminLogin)
	r.Get(router.PathRegister, h.RegisterPage)
	r.With(limit).Post(router.PathRegister, h.Register)
	r.Get(router.PathLogout, h.Logout)

	// Admin
	r.Get(router.PathAdminDashboard, h.AdminDashboard)
	r.Post("/admin/users/{id}/status", h.SetUserStatus)
	r.Get(router.PathAdminDoctors, h.AdminDoctors)
	r.Post(router.PathAdminDoctors, h.CreateDoctor)
	r.Get(router.PathAdminDoctors+"/{id}", h.AdminDoctor)
	r.Post(router.PathAdminDoctors+"/{id}", h.UpdateDoctor)
	r.Post(router.PathAdminDoctors+"/{id}/delete", h.DeleteDoctor)
	r.Get(router.PathAdminPatients, h.AdminPatients)
	r.Get(router.PathAdminAppointments, h.AdminAppointments)
	r.Get(router.PathAdminProfile, h.AdminProfile)
	r.Get(router.PathAdminReports, h.AdminReports)
	r.Post(router.PathAdminReports+"/export", h.ExportReport)
	r.Get(router.PathAdminReports+"/download/{file}", h.DownloadReport)
	r.Get(router.PathAdminActivity, h.AdminActivity)

	// Doctor
	r.Get(router.PathDoctorDashboard, h.DoctorDashboard)
	r.Post("/doctor/appointments/{id}/complete", h.CompleteAppointment)
	r.Get(router.PathDoctorAppointments, h.DoctorAppointments)
	r.Get(router.PathDoctorProfile, h.DoctorProfile)
	r.Post(router.PathDoctorProfile, h.SaveDoctorProfile)

	// Patient
	r.Get(router.PathPatientDashboard, h.PatientDashboard)
	r.Get(router.PathPatientProfile, h.PatientProfile)
	r.Post(router.PathPatientProfile, h.SavePatientProfile)
	r.Get(router.PathPatientDoctors, h.PatientDoctors)
	r.Post(router.PathPatientAppointments+"/book", h.BookAppointment)
	r.Get(router.PathPatientAppointments, h.PatientAppointments)
	r.Post(router.PathPatientAppointments+"/{id}/cancel", h.CancelAppointment)
	r.Get(router.PathPatientTreatments, h.PatientTreatments)
	r.Post(router.PathPatientTreatments+"/export", h.ExportTreatments)
	r.Get(router.PathPatientTreatments+"/download", h.DownloadTreatments)

	// Home services
	r.Get(router.PathPatientServices, h.Services)
	r.Post(router.PathPatientServices+"/requests", h.RequestService)
	r.Get(router.PathPatientServices+"/requests/{id}", h.ServiceRequest)
	r.Post(router.PathPatientServices+"/requests/{id}", h.ReviewServiceRequest)
	r.Post(router.PathPatientServices+"/requests/{id}/close", h.CloseServiceRequest)
	r.Get(router.PathServiceSearch, h.ServiceSearchPage)
	r.Post(router.PathServiceSearch, h.ServiceSearch)
	r.Get(router.PathServiceSummary, h.ServiceSummary)
}

// API mounts the JSON endpoints. The session middleware must already be applied.
func (h *Handler) API(r chi.Router) {
	r.Get("/session", h.SessionJSON)
	r.Get("/reports", h.ReportsJSON)
}

// NotFound sends unknown paths to the home page
func NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, router.PathHome, http.StatusSeeOther)
}
