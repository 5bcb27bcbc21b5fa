package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/otcheredev/hms-console/internal/cache"
	"github.com/otcheredev/hms-console/internal/client"
	"github.com/otcheredev/hms-console/internal/middleware"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/services"
	"github.com/otcheredev/hms-console/internal/session"
	"github.com/otcheredev/hms-console/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "hms_session"

type auditRows struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func (a *auditRows) Create(_ context.Context, log *models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = append(a.rows, *log)
	return nil
}

func (a *auditRows) Find(_ context.Context, f models.AuditFilter, _, _ int) ([]models.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.AuditLog
	for _, r := range a.rows {
		if f.Role != "" && r.Role != f.Role ||
			f.ResourceType != "" && r.ResourceType != f.ResourceType ||
			f.ResourceID != "" && r.ResourceID != f.ResourceID ||
			f.Status != "" && r.Status != f.Status ||
			f.Action != "" && r.Action != f.Action && !strings.HasPrefix(r.Action, f.Action+".") {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// testEnv is a console wired to a fake hospital API
type testEnv struct {
	t      *testing.T
	api    *http.ServeMux
	cache  *cache.MemoryCache
	audit  *auditRows
	server http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	api := http.NewServeMux()
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	audit := &auditRows{}
	h := New(client.New(apiSrv.URL, 5*time.Second), renderer, services.NewAuditService(audit), Options{ReportPoll: 10 * time.Second})

	sessions := middleware.Session(mc, middleware.SessionOptions{CookieName: testCookie, TTL: time.Hour})
	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Route("/api", func(r chi.Router) {
		r.Use(sessions)
		h.API(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(sessions)
		r.Use(middleware.Guard)
		h.Pages(r, nil)
	})
	r.NotFound(NotFound)

	return &testEnv{t: t, api: api, cache: mc, audit: audit, server: r}
}

// apiJSON registers a fake API route answering status and body
func (e *testEnv) apiJSON(pattern string, status int, body any) {
	e.api.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})
}

func testToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

// loginAs seeds a session for role and returns its cookie
func (e *testEnv) loginAs(role session.Role) *http.Cookie {
	e.t.Helper()
	id := uuid.NewString()
	token := testToken(e.t, jwt.MapClaims{"sub": "user@example.com", "role": string(role), "user_id": 42})
	store := session.NewStore(session.NewCacheStorage(e.cache, id, time.Hour))
	_, err := store.Login(context.Background(), role, token, session.LandingNone)
	require.NoError(e.t, err)
	return &http.Cookie{Name: testCookie, Value: id}
}

func (e *testEnv) restore(c *http.Cookie) session.Session {
	e.t.Helper()
	sess, err := session.NewStore(session.NewCacheStorage(e.cache, c.Value, time.Hour)).Restore(context.Background())
	require.NoError(e.t, err)
	return sess
}

func (e *testEnv) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.server.ServeHTTP(w, req)
	return w
}

// follow performs a POST and then GETs the redirect target like a browser
// would, sending the session cookie the POST issued when there is one.
func (e *testEnv) follow(target string, form url.Values, cookie *http.Cookie) (*httptest.ResponseRecorder, *httptest.ResponseRecorder) {
	e.t.Helper()
	first := e.do(http.MethodPost, target, form, cookie)
	require.Equal(e.t, http.StatusSeeOther, first.Code, first.Body.String())
	if issued := issuedCookie(first); issued != nil {
		cookie = issued
	}
	return first, e.do(http.MethodGet, first.Header().Get("Location"), nil, cookie)
}

func issuedCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	c := issuedCookie(w)
	require.NotNil(t, c, "no session cookie issued")
	return c
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/admin/dashboard", "/doctor/profile", "/patient/treatments", "/patient/services/summary"} {
		w := env.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}

	for _, path := range []string{"/", "/login", "/register", "/admin/login"} {
		w := env.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/no/such/page", nil, env.loginAs(session.RoleAdmin))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLoginLandsOnClaimRedirect(t *testing.T) {
	env := newTestEnv(t)
	token := testToken(t, jwt.MapClaims{"sub": "ann@example.com", "role": "patient", "user_id": 5, "redirect": "patient_profile"})
	env.api.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, models.Credentials{Username: "ann@example.com", Password: "pw"}, creds)
		json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: token})
	})
	env.apiJSON("GET /patient/profile", http.StatusOK, map[string]string{"message": "no profile"})

	w := env.do(http.MethodPost, "/login", url.Values{"username": {" ann@example.com "}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/patient/profile", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	assert.Equal(t, session.Session{IsAuthenticated: true, Role: session.RolePatient, Token: token}, env.restore(cookie))

	page := env.do(http.MethodGet, "/patient/profile", nil, cookie)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Logged in successfully.")
	assert.Contains(t, page.Body.String(), "No profile yet.")
	assert.Contains(t, page.Body.String(), "ann@example.com")

	again := env.do(http.MethodGet, "/patient/profile", nil, cookie)
	assert.NotContains(t, again.Body.String(), "Logged in successfully.", "flash is shown once")
}

func TestLoginWithoutRedirectUsesRoleDashboard(t *testing.T) {
	env := newTestEnv(t)
	token := testToken(t, jwt.MapClaims{"sub": "dr", "role": "doctor", "user_id": 3})
	env.apiJSON("POST /login", http.StatusOK, models.TokenResponse{AccessToken: token})

	w := env.do(http.MethodPost, "/login", url.Values{"username": {"dr"}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/doctor/dashboard", w.Header().Get("Location"))
}

func TestAdminLoginLandsOnDashboard(t *testing.T) {
	env := newTestEnv(t)
	token := testToken(t, jwt.MapClaims{"sub": "root", "role": "admin", "admin_user_id": 1})
	env.apiJSON("POST /admin/login", http.StatusOK, models.TokenResponse{AccessToken: token})

	w := env.do(http.MethodPost, "/admin/login", url.Values{"username": {"root"}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	assert.Equal(t, session.RoleAdmin, env.restore(sessionCookie(t, w)).Role)
}

func TestLoginRotatesSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	token := testToken(t, jwt.MapClaims{"sub": "dr", "role": "doctor", "user_id": 3})
	env.apiJSON("POST /login", http.StatusOK, models.TokenResponse{AccessToken: token})
	env.apiJSON("GET /doctor/appointments", http.StatusOK, []models.Appointment{})
	env.apiJSON("GET /admin/patients", http.StatusOK, []models.Patient{})

	planted := sessionCookie(t, env.do(http.MethodGet, "/login", nil, nil))
	first, page := env.follow("/login", url.Values{"username": {"dr"}, "password": {"pw"}}, planted)

	issued := sessionCookie(t, first)
	assert.NotEqual(t, planted.Value, issued.Value)
	assert.True(t, env.restore(issued).IsAuthenticated)
	assert.False(t, env.restore(planted).IsAuthenticated, "a cookie known before login never gains access")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Logged in successfully.")
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("POST /login", http.StatusUnauthorized, map[string]string{"category": "danger", "message": "Account not approved"})

	w := env.do(http.MethodPost, "/login", url.Values{"username": {"dr"}, "password": {"pw"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alert-danger")
	assert.Contains(t, w.Body.String(), "Account not approved")
	assert.Contains(t, w.Body.String(), `value="dr"`)
	assert.False(t, env.restore(sessionCookie(t, w)).IsAuthenticated)

	require.Len(t, env.audit.rows, 1)
	assert.Equal(t, models.AuditFailure, env.audit.rows[0].Status)
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/login", url.Values{"username": {"dr"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alert-warning")
	assert.Contains(t, w.Body.String(), "Password is required.")
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("POST /register", http.StatusOK, map[string]string{"category": "success", "message": "registered"})

	_, page := env.follow("/register", url.Values{"username": {"dr@example.com"}, "password": {"secret1"}, "role": {"doctor"}}, nil)
	assert.Contains(t, page.Body.String(), "An administrator must approve your account")
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(session.RolePatient)

	w := env.do(http.MethodGet, "/logout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, session.Session{}, env.restore(cookie))

	after := env.do(http.MethodGet, "/patient/dashboard", nil, cookie)
	assert.Equal(t, "/", after.Header().Get("Location"))
}

func TestAdminDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /admin/dashboard", http.StatusOK, models.DashboardStats{TotalDoctors: 2, TotalPatients: 9})
	env.apiJSON("GET /admin/doctors", http.StatusOK, []models.Doctor{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob", Approve: true}})
	env.apiJSON("GET /admin/patients", http.StatusOK, []models.Patient{{ID: 5, Username: "pat"}})
	env.apiJSON("GET /admin/appointments", http.StatusOK, []models.Appointment{
		{ID: 1, Date: "2025-01-01", Status: "Booked"},
		{ID: 2, Date: "2025-01-01", Status: "Completed"},
		{ID: 3, Date: "2025-01-02", Status: "Booked"},
	})

	w := env.do(http.MethodGet, "/admin/dashboard", nil, env.loginAs(session.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "pat")
	assert.Contains(t, body, `"labels":["2025-01-01","2025-01-02"]`)
	assert.NotContains(t, body, "alert-danger")
}

func TestFetchFailureKeepsPageAndShowsDanger(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /admin/appointments", http.StatusInternalServerError, map[string]string{})

	w := env.do(http.MethodGet, "/admin/appointments", nil, env.loginAs(session.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alert-danger")
	assert.Contains(t, w.Body.String(), "Failed to load appointments.")
	assert.Contains(t, w.Body.String(), "No appointments match.")
}

func TestAdminDoctorsSearch(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /admin/doctors", http.StatusOK, []models.Doctor{{ID: 1, Username: "Alice"}, {ID: 2, Username: "bob"}})

	w := env.do(http.MethodGet, "/admin/doctors?q=ALI", nil, env.loginAs(session.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice")
	assert.NotContains(t, w.Body.String(), ">bob<")
	assert.Contains(t, w.Body.String(), "Showing 1 of 2")
}

func TestAdminPatientsWithProfiles(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /admin/patients", http.StatusOK, []models.Patient{{ID: 5, Username: "pat"}, {ID: 6, Username: "quinn"}})
	env.apiJSON("GET /patient/profile/5", http.StatusOK, models.PatientProfile{FullName: "Pat Smith", Address: "Accra"})
	env.apiJSON("GET /patient/profile/6", http.StatusNotFound, map[string]string{"message": "Not found"})

	w := env.do(http.MethodGet, "/admin/patients?q=accra", nil, env.loginAs(session.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pat Smith")
	assert.NotContains(t, w.Body.String(), "quinn")
}

func TestSetUserStatus(t *testing.T) {
	env := newTestEnv(t)
	env.api.HandleFunc("POST /admin/block_user/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.PathValue("id"))
		var body models.UserAction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "block", body.Action)
		json.NewEncoder(w).Encode(models.Ack{Message: "User blocked", Category: "success"})
	})
	cookie := env.loginAs(session.RoleAdmin)

	w := env.do(http.MethodPost, "/admin/users/4/status", url.Values{"action": {"block"}, "return": {"/admin/patients"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/patients", w.Header().Get("Location"))

	for _, back := range []string{"//evil.example", "/\t/evil.example", "/\n/evil.example"} {
		w = env.do(http.MethodPost, "/admin/users/4/status", url.Values{"action": {"block"}, "return": {back}}, cookie)
		assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"), back)
	}

	w = env.do(http.MethodPost, "/admin/users/4/status", url.Values{"action": {"promote"}}, cookie)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	require.Len(t, env.audit.rows, 4)
	assert.Equal(t, "user.block", env.audit.rows[0].Action)
}

func TestDeleteDoctor(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("DELETE /admin/doctors/7", http.StatusOK, models.Ack{Message: "Doctor deleted"})
	env.apiJSON("DELETE /admin/doctors/8", http.StatusNotFound, models.Ack{Message: "Doctor not found", Category: "danger"})
	cookie := env.loginAs(session.RoleAdmin)

	w := env.do(http.MethodPost, "/admin/doctors/7/delete", nil, cookie)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = env.do(http.MethodPost, "/admin/doctors/8/delete", nil, cookie)
	assert.Equal(t, "/admin/doctors/8", w.Header().Get("Location"))

	require.Len(t, env.audit.rows, 2)
	assert.Equal(t, "7", env.audit.rows[0].ResourceID)
	assert.Equal(t, models.AuditSuccess, env.audit.rows[0].Status)
	assert.Equal(t, models.AuditFailure, env.audit.rows[1].Status)
}

func TestAdminActivityFilter(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("DELETE /admin/doctors/7", http.StatusOK, models.Ack{Message: "Doctor deleted"})
	env.apiJSON("DELETE /admin/doctors/8", http.StatusNotFound, models.Ack{Message: "Doctor not found"})
	env.apiJSON("POST /admin/block_user/{id}", http.StatusOK, models.Ack{Message: "User blocked"})
	cookie := env.loginAs(session.RoleAdmin)

	env.do(http.MethodPost, "/admin/doctors/7/delete", nil, cookie)
	env.do(http.MethodPost, "/admin/doctors/8/delete", nil, cookie)
	env.do(http.MethodPost, "/admin/users/4/status", url.Values{"action": {"block"}}, cookie)

	t.Run("status", func(t *testing.T) {
		w := env.do(http.MethodGet, "/admin/activity?status=failure", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "doctor #8")
		assert.NotContains(t, w.Body.String(), "doctor #7")
		assert.NotContains(t, w.Body.String(), "user #4")
		assert.Contains(t, w.Body.String(), `<option value="failure" selected>`)
	})

	t.Run("action prefix", func(t *testing.T) {
		w := env.do(http.MethodGet, "/admin/activity?action=doctor", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "doctor #7")
		assert.Contains(t, w.Body.String(), "doctor #8")
		assert.NotContains(t, w.Body.String(), "user #4")
		assert.Contains(t, w.Body.String(), `name="action" value="doctor"`)
	})

	t.Run("role", func(t *testing.T) {
		w := env.do(http.MethodGet, "/admin/activity?role=admin&action=user.block", nil, cookie)
		assert.Contains(t, w.Body.String(), "user #4")
		assert.NotContains(t, w.Body.String(), "doctor #7")

		w = env.do(http.MethodGet, "/admin/activity?role=doctor", nil, cookie)
		assert.Contains(t, w.Body.String(), "No activity recorded.")
		assert.Contains(t, w.Body.String(), `<option value="doctor" selected>`)
	})
}

func TestReports(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /admin/reports/list", http.StatusOK, models.ReportList{Downloads: []string{"doctor_3_appointments.csv"}})
	env.api.HandleFunc("GET /admin/reports/download/{file}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("appointment_id,patient_id\n1,5\n"))
	})
	cookie := env.loginAs(session.RoleAdmin)

	t.Run("list refreshes", func(t *testing.T) {
		w := env.do(http.MethodGet, "/admin/reports", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<noscript><meta http-equiv="refresh" content="10"></noscript>`)
		assert.Contains(t, w.Body.String(), `fetch("/api/reports"`)
		assert.Contains(t, w.Body.String(), "doctor_3_appointments.csv")
	})

	t.Run("empty professional id", func(t *testing.T) {
		_, page := env.follow("/admin/reports/export", url.Values{"professional_id": {""}}, cookie)
		assert.Contains(t, page.Body.String(), "Please enter a valid professional ID!")
		assert.Contains(t, page.Body.String(), "alert-danger")
	})

	t.Run("download streams attachment", func(t *testing.T) {
		w := env.do(http.MethodGet, "/admin/reports/download/doctor_3_appointments.csv", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename=doctor_3_appointments.csv`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "appointment_id,patient_id\n1,5\n", w.Body.String())
	})

	t.Run("json listing", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/reports", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"downloads":["doctor_3_appointments.csv"]}`, w.Body.String())

		anon := env.do(http.MethodGet, "/api/reports", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, anon.Code)
	})
}

func TestReportsJSONStatus(t *testing.T) {
	tests := []struct {
		name     string
		upstream int
		want     int
	}{
		{"expired token", http.StatusUnauthorized, http.StatusUnauthorized},
		{"malformed token", http.StatusUnprocessableEntity, http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden, http.StatusForbidden},
		{"server error", http.StatusInternalServerError, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.apiJSON("GET /admin/reports/list", tt.upstream, map[string]string{"msg": "rejected"})

			w := env.do(http.MethodGet, "/api/reports", nil, env.loginAs(session.RoleAdmin))
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), "danger")
		})
	}
}

func TestDoctorDashboardUnknownPatient(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /doctor/appointments", http.StatusOK, []models.Appointment{{ID: 1, PatientID: 5, Date: "2025-02-01", Time: "09:00:00", Status: "Booked"}})
	env.apiJSON("GET /admin/patients", http.StatusUnauthorized, map[string]string{"message": "Admin only"})

	w := env.do(http.MethodGet, "/doctor/dashboard", nil, env.loginAs(session.RoleDoctor))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown")
	assert.Contains(t, w.Body.String(), "/doctor/appointments/1/complete")
	assert.NotContains(t, w.Body.String(), "Admin only", "name lookup failure is silent")
}

func TestCompleteAppointmentNeedsDiagnosisOrPrescription(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /doctor/appointments", http.StatusOK, []models.Appointment{})
	env.apiJSON("GET /admin/patients", http.StatusOK, []models.Patient{})

	_, page := env.follow("/doctor/appointments/1/complete", url.Values{"notes": {"rest"}}, env.loginAs(session.RoleDoctor))
	assert.Contains(t, page.Body.String(), "Please enter diagnosis or prescription.")
}

func TestDoctorAppointmentsEmptyIsInfo(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /doctor/appointments", http.StatusOK, []models.Appointment{})

	w := env.do(http.MethodGet, "/doctor/appointments", nil, env.loginAs(session.RoleDoctor))
	assert.Contains(t, w.Body.String(), "alert-info")
	assert.Contains(t, w.Body.String(), "No appointments available.")
}

func TestBookAppointment(t *testing.T) {
	env := newTestEnv(t)
	env.api.HandleFunc("POST /patient/appointments/book", func(w http.ResponseWriter, r *http.Request) {
		var form models.BookingForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		assert.Equal(t, models.BookingForm{DoctorID: 3, DepartmentID: 2, Date: "2030-05-01", Time: "10:30:00"}, form)
		json.NewEncoder(w).Encode(models.BookingResponse{Message: "Appointment booked", AppointmentID: 11})
	})
	env.apiJSON("GET /patient/appointments", http.StatusOK, []models.Appointment{{ID: 11, DoctorID: 3, Date: "2030-05-01", Time: "10:30:00", Status: "Booked"}})

	first, page := env.follow("/patient/appointments/book", url.Values{
		"doctor_id": {"3"}, "department_id": {"2"}, "date": {"2030-05-01"}, "time": {"10:30"},
	}, env.loginAs(session.RolePatient))
	assert.Equal(t, "/patient/appointments", first.Header().Get("Location"))
	assert.Contains(t, page.Body.String(), "Appointment booked")
	assert.Contains(t, page.Body.String(), "return confirm(")
}

func TestDownloadTreatmentsUsesAccountFile(t *testing.T) {
	env := newTestEnv(t)
	env.api.HandleFunc("GET /reports/download/{file}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "patient_42_treatments.csv", r.PathValue("file"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("appointment_date\n"))
	})

	w := env.do(http.MethodGet, "/patient/treatments/download", nil, env.loginAs(session.RolePatient))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "patient_42_treatments.csv")
}

func TestServiceSummaryChart(t *testing.T) {
	env := newTestEnv(t)
	env.apiJSON("GET /get-claims", http.StatusOK, map[string]any{"claims": map[string]any{"user_id": 42}})
	env.apiJSON("GET /customer/summary/service_requests/42", http.StatusOK, []models.SummaryPoint{{Date: "2025-03-01", Count: 2}})

	w := env.do(http.MethodGet, "/patient/services/summary", nil, env.loginAs(session.RolePatient))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"labels":["2025-03-01"]`)
}

func TestSessionJSON(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/session", nil, nil)
	assert.JSONEq(t, `{"authenticated":false,"home":"/"}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/session", nil, env.loginAs(session.RoleDoctor))
	assert.JSONEq(t, `{"authenticated":true,"role":"doctor","display_name":"user@example.com","home":"/doctor/dashboard"}`, w.Body.String())
}
