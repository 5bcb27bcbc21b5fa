// Package router holds the console's page table and the unauthenticated-access guard.
package router

const (
	PathHome       = "/"
	PathLogin      = "/login"
	PathRegister   = "/register"
	PathAdminLogin = "/admin/login"
	PathLogout     = "/logout"

	PathAdminDashboard    = "/admin/dashboard"
	PathAdminDoctors      = "/admin/doctors"
	PathAdminPatients     = "/admin/patients"
	PathAdminAppointments = "/admin/appointments"
	PathAdminReports      = "/admin/reports"
	PathAdminProfile      = "/admin/profile"
	PathAdminActivity     = "/admin/activity"

	PathDoctorDashboard    = "/doctor/dashboard"
	PathDoctorProfile      = "/doctor/profile"
	PathDoctorAppointments = "/doctor/appointments"

	PathPatientDashboard    = "/patient/dashboard"
	PathPatientProfile      = "/patient/profile"
	PathPatientDoctors      = "/patient/doctors"
	PathPatientAppointments = "/patient/appointments"
	PathPatientTreatments   = "/patient/treatments"
	PathPatientServices     = "/patient/services"
	PathServiceSearch       = "/patient/services/search"
	PathServiceSummary      = "/patient/services/summary"
)

// Route is one page of the console
type Route struct {
	Path  string
	Title string
	Role  string // "" for public pages
	Nav   bool   // listed in the navbar for Role
}

// Routes lists every top-level page. Detail pages ({id}) hang off these paths.
var Routes = []Route{
	{Path: PathHome, Title: "Home"},
	{Path: PathLogin, Title: "Login"},
	{Path: PathRegister, Title: "Register"},
	{Path: PathAdminLogin, Title: "Admin Login"},

	{Path: PathAdminDashboard, Title: "Dashboard", Role: "admin", Nav: true},
	{Path: PathAdminDoctors, Title: "Doctors", Role: "admin", Nav: true},
	{Path: PathAdminPatients, Title: "Patients", Role: "admin", Nav: true},
	{Path: PathAdminAppointments, Title: "Appointments", Role: "admin", Nav: true},
	{Path: PathAdminReports, Title: "Reports", Role: "admin", Nav: true},
	{Path: PathAdminActivity, Title: "Activity", Role: "admin", Nav: true},
	{Path: PathAdminProfile, Title: "Profile", Role: "admin", Nav: true},

	{Path: PathDoctorDashboard, Title: "Dashboard", Role: "doctor", Nav: true},
	{Path: PathDoctorAppointments, Title: "Appointments", Role: "doctor", Nav: true},
	{Path: PathDoctorProfile, Title: "Profile", Role: "doctor", Nav: true},

	{Path: PathPatientDashboard, Title: "Dashboard", Role: "patient", Nav: true},
	{Path: PathPatientDoctors, Title: "Find a Doctor", Role: "patient", Nav: true},
	{Path: PathPatientAppointments, Title: "Appointments", Role: "patient", Nav: true},
	{Path: PathPatientTreatments, Title: "Treatments", Role: "patient", Nav: true},
	{Path: PathPatientServices, Title: "Services", Role: "patient", Nav: true},
	{Path: PathServiceSearch, Title: "Search Services", Role: "patient"},
	{Path: PathServiceSummary, Title: "Service Summary", Role: "patient"},
	{Path: PathPatientProfile, Title: "Profile", Role: "patient", Nav: true},
}

// NavFor returns the navbar entries for a role, in table order
func NavFor(role string) []Route {
	var out []Route
	for _, r := range Routes {
		if r.Nav && r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

// Title returns the page title for a path, or "" when the path is not a top-level page
func Title(path string) string {
	for _, r := range Routes {
		if r.Path == path {
			return r.Title
		}
	}
	return ""
}
