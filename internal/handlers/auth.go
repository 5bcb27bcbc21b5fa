package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/metrics"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/session"
	"github.com/otcheredev/hms-console/internal/views"
	"github.com/rs/zerolog/log"
)

type homeData struct {
	Slides []views.Slide
	Home   string
}

type credentialsData struct {
	Username string
}

type registerData struct {
	Username string
	Role     string
}

type loginFunc func(context.Context, models.Credentials) (models.TokenResponse, error)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home", homeData{Slides: views.HomeSlides, Home: sessionOf(r).Role().Home()})
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", credentialsData{})
}

func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin_login", credentialsData{})
}

// Login signs a patient or doctor in; role and landing page come from the token claims
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "login", h.api.Login, session.RoleNone, session.LandingNone)
}

// AdminLogin always lands on the admin dashboard
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "admin_login", h.api.AdminLogin, session.RoleAdmin, session.LandingAdminDashboard)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, page string, call loginFunc, role session.Role, landing session.Landing) {
	ctx := r.Context()
	creds := models.Credentials{Username: formString(r, "username"), Password: r.FormValue("password")}
	data := credentialsData{Username: creds.Username}

	if err := models.ValidateStruct(creds); err != nil {
		h.render(w, r, page, data, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	resp, err := call(ctx, creds)
	if err == nil && resp.AccessToken == "" {
		err = errors.New("login response carried no access token")
	}
	if err != nil {
		metrics.Logins.WithLabelValues(roleLabel(role), "failure").Inc()
		h.record(r, "login", "user", creds.Username, started, err)
		h.render(w, r, page, data, flash.FromError(err, "Login failed. Please check your credentials."))
		return
	}

	claims, err := session.DecodeClaims(resp.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("Login token claims unreadable")
	}
	if role == session.RoleNone {
		role = claims.Role
	}
	if landing == session.LandingNone {
		landing = claims.Redirect
	}
	if !role.Valid() {
		metrics.Logins.WithLabelValues(roleLabel(role), "failure").Inc()
		h.render(w, r, page, data, flash.New(flash.Danger, "Your account role is not supported by this console."))
		return
	}

	target, err := sessionOf(r).Login(ctx, role, resp.AccessToken, landing)
	if err != nil {
		log.Error().Err(err).Msg("Failed to persist session")
		metrics.Logins.WithLabelValues(role.String(), "failure").Inc()
		h.render(w, r, page, data, flash.New(flash.Danger, "Could not start your session. Please try again."))
		return
	}

	metrics.Logins.WithLabelValues(role.String(), "success").Inc()
	h.record(r, "login", "user", creds.Username, started, nil)
	h.redirect(w, r, target, flash.New(flash.Success, "Logged in successfully."))
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", registerData{Role: string(session.RolePatient)})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	reg := models.Registration{
		Username: formString(r, "username"),
		Password: r.FormValue("password"),
		Role:     formString(r, "role"),
	}
	data := registerData{Username: reg.Username, Role: reg.Role}

	if err := models.ValidateStruct(reg); err != nil {
		h.render(w, r, "register", data, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	_, err := h.api.Register(r.Context(), reg)
	h.record(r, "register", "user", reg.Username, started, err)
	if err != nil {
		h.render(w, r, "register", data, flash.FromError(err, "Registration failed."))
		return
	}

	text := "Registration successful. Please log in."
	if reg.Role == string(session.RoleDoctor) {
		text = "Registration successful. An administrator must approve your account before you can log in."
	}
	h.redirect(w, r, router.PathLogin, flash.New(flash.Success, text))
}

// Logout clears the session whatever its state and returns to the home page
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sh := sessionOf(r)
	if sh.Authenticated() {
		h.record(r, "logout", "user", sh.DisplayName(), time.Time{}, nil)
	}

	target, err := sh.Logout(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
		target = router.PathHome
	}
	h.redirect(w, r, target, flash.New(flash.Info, "You have been logged out."))
}

func roleLabel(r session.Role) string {
	if r == session.RoleNone {
		return "unknown"
	}
	return r.String()
}
