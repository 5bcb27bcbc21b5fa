package session

import (
	"strings"

	"github.com/otcheredev/hms-console/internal/router"
)

// Role decides the landing page and the visible navbar
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole accepts the roles issued by the API; "customer" is the marketplace name for a patient
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "doctor":
		return RoleDoctor
	case "patient", "customer":
		return RolePatient
	default:
		return RoleNone
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

func (r Role) String() string {
	return string(r)
}

var defaultLanding = map[Role]string{
	RoleAdmin:   router.PathAdminDashboard,
	RoleDoctor:  router.PathDoctorDashboard,
	RolePatient: router.PathPatientDashboard,
}

// Home is the role's dashboard, or the site root for an unknown role
func (r Role) Home() string {
	if p, ok := defaultLanding[r]; ok {
		return p
	}
	return router.PathHome
}

// Landing is an explicit post-login target carried in the login token
type Landing string

const (
	LandingNone             Landing = ""
	LandingAdminDashboard   Landing = "admin_dashboard"
	LandingDoctorDashboard  Landing = "doctor_dashboard"
	LandingDoctorProfile    Landing = "doctor_profile"
	LandingPatientDashboard Landing = "patient_dashboard"
	LandingPatientProfile   Landing = "patient_profile"
)

var landingPaths = map[Landing]string{
	LandingAdminDashboard:   router.PathAdminDashboard,
	LandingDoctorDashboard:  router.PathDoctorDashboard,
	LandingDoctorProfile:    router.PathDoctorProfile,
	LandingPatientDashboard: router.PathPatientDashboard,
	LandingPatientProfile:   router.PathPatientProfile,
}

// ParseLanding maps a claim value to a known landing; unknown values yield LandingNone
func ParseLanding(s string) Landing {
	l := Landing(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := landingPaths[l]; ok {
		return l
	}
	return LandingNone
}

// Path returns the route for the landing, or "" for LandingNone
func (l Landing) Path() string {
	return landingPaths[l]
}
