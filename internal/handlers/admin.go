package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/views"
)

type adminDashboardData struct {
	Stats    models.DashboardStats
	Doctors  []models.Doctor
	Patients []models.Patient
	Charts   []views.Chart
}

type doctorsData struct {
	Query   string
	Doctors []models.Doctor
	Total   int
}

type doctorData struct {
	Doctor   models.DoctorDetail
	Found    bool
	Activity []models.AuditLog
}

type patientsData struct {
	Query    string
	Patients []models.Patient
}

type appointmentsData struct {
	Query        string
	Appointments []models.Appointment
	Charts       []views.Chart
}

type adminProfileData struct {
	Profile models.AdminProfile
}

func appointmentFields(a models.Appointment) []string {
	return []string{a.Date, a.Time, a.Status, a.Remarks}
}

func doctorFields(d models.Doctor) []string {
	return []string{d.Username}
}

func patientFields(p models.Patient) []string {
	fields := []string{p.Username}
	if p.Profile != nil {
		fields = append(fields, p.Profile.FullName, p.Profile.Contact, p.Profile.Address)
	}
	return fields
}

// appointmentCharts re-aggregates on every render
func appointmentCharts(appts []models.Appointment) []views.Chart {
	return []views.Chart{
		views.NewChart("appointmentsPerDay", "bar", "Appointments per Day", appts, func(a models.Appointment) string { return a.Date }),
		views.NewChart("appointmentStatus", "doughnut", "Appointment Status", appts, func(a models.Appointment) string { return a.Status }),
	}
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := sessionOf(r).Token()

	var (
		data     adminDashboardData
		msgs     []*flash.Message
		doctors  = views.NewListState[models.Doctor]("Failed to load doctors.")
		patients = views.NewListState[models.Patient]("Failed to load patients.")
		appts    = views.NewListState[models.Appointment]("Failed to load appointments.")
	)

	stats, err := h.api.AdminDashboard(ctx, token)
	if err != nil {
		msg := flash.FromError(err, "Failed to load dashboard statistics.")
		msgs = append(msgs, &msg)
	} else {
		data.Stats = stats
	}

	doctors.Apply(h.api.Doctors(ctx, token))
	patients.Apply(h.api.Patients(ctx, token))
	appts.Apply(h.api.Appointments(ctx, token))
	msgs = append(msgs, doctors.Flash, patients.Flash, appts.Flash)

	data.Doctors = doctors.Items
	data.Patients = patients.Items
	data.Charts = appointmentCharts(appts.Items)
	h.render(w, r, "admin_dashboard", data, banners(msgs...)...)
}

// SetUserStatus approves, rejects, blocks or unblocks a doctor or patient,
// then returns to the page the form came from.
func (h *Handler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	back := safeReturn(r.FormValue("return"), router.PathAdminDashboard)

	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, back, flash.New(flash.Danger, "Unknown user."))
		return
	}

	action := models.UserAction{Action: formString(r, "action")}
	if err := models.ValidateStruct(action); err != nil {
		h.redirect(w, r, back, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	ack, err := h.api.SetUserStatus(r.Context(), sessionOf(r).Token(), id, action)
	h.record(r, "user."+action.Action, "user", strconv.FormatInt(id, 10), started, err)
	h.redirect(w, r, back, outcome(ack, err, "User updated.", "Failed to update user."))
}

func (h *Handler) AdminDoctors(w http.ResponseWriter, r *http.Request) {
	list := views.NewListState[models.Doctor]("Failed to load doctors.")
	list.Apply(h.api.Doctors(r.Context(), sessionOf(r).Token()))

	q := r.URL.Query().Get("q")
	h.render(w, r, "admin_doctors", doctorsData{
		Query:   q,
		Doctors: views.Filter(list.Items, q, doctorFields),
		Total:   len(list.Items),
	}, banners(list.Flash)...)
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	doc := models.NewDoctor{Username: formString(r, "username"), Password: r.FormValue("password")}
	if err := models.ValidateStruct(doc); err != nil {
		h.redirect(w, r, router.PathAdminDoctors, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	ack, err := h.api.CreateDoctor(r.Context(), sessionOf(r).Token(), doc)
	h.record(r, "doctor.create", "doctor", doc.Username, started, err)
	h.redirect(w, r, router.PathAdminDoctors, outcome(ack, err, "Doctor created.", "Failed to create doctor."))
}

func (h *Handler) AdminDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathAdminDoctors, flash.New(flash.Danger, "Unknown doctor."))
		return
	}

	var data doctorData
	var msgs []flash.Message

	detail, err := h.api.Doctor(r.Context(), sessionOf(r).Token(), id)
	if err != nil {
		msgs = append(msgs, flash.FromError(err, "Failed to load doctor."))
	} else {
		if detail.Profile != nil && detail.Profile.Missing() {
			detail.Profile = nil
		}
		data.Doctor, data.Found = detail, true
	}

	data.Activity, _ = h.audit.ForResource(r.Context(), "doctor", strconv.FormatInt(id, 10), 10)
	h.render(w, r, "admin_doctor", data, msgs...)
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathAdminDoctors, flash.New(flash.Danger, "Unknown doctor."))
		return
	}

	update := models.DoctorUpdate{Approve: formBool(r, "approve"), Blocked: formBool(r, "blocked")}
	started := time.Now()
	ack, err := h.api.UpdateDoctor(r.Context(), sessionOf(r).Token(), id, update)
	h.record(r, "doctor.update", "doctor", strconv.FormatInt(id, 10), started, err)
	h.redirect(w, r, r.URL.Path, outcome(ack, err, "Doctor updated.", "Failed to update doctor."))
}

// DeleteDoctor lands on the dashboard when the doctor is gone, and stays on
// the detail page otherwise.
func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathAdminDoctors, flash.New(flash.Danger, "Unknown doctor."))
		return
	}

	started := time.Now()
	ack, err := h.api.DeleteDoctor(r.Context(), sessionOf(r).Token(), id)
	h.record(r, "doctor.delete", "doctor", strconv.FormatInt(id, 10), started, err)

	msg := outcome(ack, err, "Doctor deleted.", "Failed to delete doctor.")
	if err != nil {
		h.redirect(w, r, router.PathAdminDoctors+"/"+strconv.FormatInt(id, 10), msg)
		return
	}
	h.redirect(w, r, router.PathAdminDashboard, msg)
}

// AdminPatients lists patients with their profiles. Profiles are fetched
// concurrently; a patient whose profile lookup fails is shown without one.
func (h *Handler) AdminPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := sessionOf(r).Token()

	list := views.NewListState[models.Patient]("Failed to load patients.")
	list.Apply(h.api.Patients(ctx, token))

	patients := make([]models.Patient, len(list.Items))
	copy(patients, list.Items)

	var wg sync.WaitGroup
	for i := range patients {
		wg.Add(1)
		go func(p *models.Patient) {
			defer wg.Done()
			profile, err := h.api.PatientProfileByID(ctx, token, p.ID)
			if err != nil || profile.Missing() {
				p.Profile = nil
				return
			}
			p.Profile = &profile
		}(&patients[i])
	}
	wg.Wait()

	q := r.URL.Query().Get("q")
	h.render(w, r, "admin_patients", patientsData{
		Query:    q,
		Patients: views.Filter(patients, q, patientFields),
	}, banners(list.Flash)...)
}

func (h *Handler) AdminAppointments(w http.ResponseWriter, r *http.Request) {
	list := views.NewListState[models.Appointment]("Failed to load appointments.")
	list.Apply(h.api.Appointments(r.Context(), sessionOf(r).Token()))

	q := r.URL.Query().Get("q")
	h.render(w, r, "admin_appointments", appointmentsData{
		Query:        q,
		Appointments: views.Filter(list.Items, q, appointmentFields),
		Charts:       appointmentCharts(list.Items),
	}, banners(list.Flash)...)
}

func (h *Handler) AdminProfile(w http.ResponseWriter, r *http.Request) {
	var msgs []flash.Message
	profile, err := h.api.AdminProfile(r.Context(), sessionOf(r).Token())
	if err != nil {
		msgs = append(msgs, flash.FromError(err, "Failed to load profile."))
	}
	h.render(w, r, "admin_profile", adminProfileData{Profile: profile}, msgs...)
}
