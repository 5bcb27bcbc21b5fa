package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/views"
)

const unknownPatient = "Unknown"

type doctorAppointment struct {
	models.Appointment
	PatientName string
}

type doctorDashboardData struct {
	Appointments []doctorAppointment
	Booked       int
}

type doctorProfileData struct {
	Profile     models.DoctorProfile
	Departments []models.Department
}

// DoctorDashboard lists the doctor's appointments with patient names. The
// names come from the admin patient list; when that is not available to
// the caller every name falls back to "Unknown".
func (h *Handler) DoctorDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := sessionOf(r).Token()

	list := views.NewListState[models.Appointment]("Failed to load appointments.")
	list.Apply(h.api.DoctorAppointments(ctx, token))

	names := map[int64]string{}
	if patients, err := h.api.Patients(ctx, token); err == nil {
		for _, p := range patients {
			names[p.ID] = p.Username
		}
	}

	data := doctorDashboardData{Appointments: make([]doctorAppointment, 0, len(list.Items))}
	for _, a := range list.Items {
		name, ok := names[a.PatientID]
		if !ok {
			name = unknownPatient
		}
		data.Appointments = append(data.Appointments, doctorAppointment{Appointment: a, PatientName: name})
		if a.Booked() {
			data.Booked++
		}
	}

	h.render(w, r, "doctor_dashboard", data, banners(list.Flash)...)
}

func (h *Handler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathDoctorDashboard, flash.New(flash.Danger, "Unknown appointment."))
		return
	}

	form := models.CompletionForm{
		Diagnosis:    formString(r, "diagnosis"),
		Prescription: formString(r, "prescription"),
		Notes:        formString(r, "notes"),
	}
	if err := models.ValidateStruct(form); err != nil {
		h.redirect(w, r, router.PathDoctorDashboard, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	ack, err := h.api.CompleteAppointment(r.Context(), sessionOf(r).Token(), id, form)
	h.record(r, "appointment.complete", "appointment", strconv.FormatInt(id, 10), started, err)
	h.redirect(w, r, router.PathDoctorDashboard, outcome(ack, err, "Appointment marked as completed.", "Failed to complete appointment."))
}

func (h *Handler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	list := views.NewListState[models.Appointment]("Failed to load appointments.")
	list.Apply(h.api.DoctorAppointments(r.Context(), sessionOf(r).Token()))

	msgs := banners(list.Flash)
	if list.Flash == nil && len(list.Items) == 0 {
		msgs = append(msgs, flash.New(flash.Info, "No appointments available."))
	}

	q := r.URL.Query().Get("q")
	h.render(w, r, "doctor_appointments", appointmentsData{
		Query:        q,
		Appointments: views.Filter(list.Items, q, appointmentFields),
	}, msgs...)
}

func (h *Handler) DoctorProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data doctorProfileData
	var msgs []flash.Message

	profile, err := h.api.DoctorProfile(ctx, sessionOf(r).Token())
	switch {
	case err != nil:
		msgs = append(msgs, flash.FromError(err, "Failed to load profile."))
	case profile.Missing():
		msgs = append(msgs, flash.New(flash.Info, "No profile yet. Please complete your profile."))
	default:
		data.Profile = profile
	}

	depts := views.NewListState[models.Department]("Failed to load departments.")
	depts.Apply(h.api.Departments(ctx))
	data.Departments = depts.Items
	msgs = append(msgs, banners(depts.Flash)...)

	h.render(w, r, "doctor_profile", data, msgs...)
}

func (h *Handler) SaveDoctorProfile(w http.ResponseWriter, r *http.Request) {
	form := models.DoctorProfileForm{
		SpecializationID: formInt64(r, "specialization_id"),
		Experience:       formString(r, "experience"),
		Availability:     formString(r, "availability"),
	}
	if err := models.ValidateStruct(form); err != nil {
		h.redirect(w, r, router.PathDoctorProfile, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	sh := sessionOf(r)
	started := time.Now()
	ack, err := h.api.SaveDoctorProfile(r.Context(), sh.Token(), form)
	h.record(r, "profile.save", "doctor", strconv.FormatInt(sh.UserID(), 10), started, err)
	h.redirect(w, r, router.PathDoctorProfile, outcome(ack, err, "Profile saved.", "Failed to save profile."))
}
