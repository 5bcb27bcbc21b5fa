package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/views"
)

type patientDashboardData struct {
	Upcoming   []models.Appointment
	Treatments int
	Chart      views.Chart
}

type patientProfileData struct {
	Profile models.PatientProfile
}

type patientDoctorsData struct {
	Departments      []models.Department
	SpecializationID int64
	Query            string
	Doctors          []models.DoctorProfile
	Today            string
}

type treatmentsData struct {
	Query      string
	Treatments []models.Treatment
}

func treatmentFields(t models.Treatment) []string {
	return []string{t.AppointmentDate, t.Diagnosis, t.Prescription, t.Notes}
}

func (h *Handler) PatientDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := sessionOf(r).Token()

	appts := views.NewListState[models.Appointment]("Failed to load appointments.")
	appts.Apply(h.api.PatientAppointments(ctx, token))
	treatments := views.NewListState[models.Treatment]("Failed to load treatments.")
	treatments.Apply(h.api.Treatments(ctx, token))

	data := patientDashboardData{
		Treatments: len(treatments.Items),
		Chart:      views.NewChart("myAppointmentStatus", "doughnut", "My Appointments", appts.Items, func(a models.Appointment) string { return a.Status }),
	}
	for _, a := range appts.Items {
		if a.Booked() {
			data.Upcoming = append(data.Upcoming, a)
		}
	}

	h.render(w, r, "patient_dashboard", data, banners(appts.Flash, treatments.Flash)...)
}

func (h *Handler) PatientProfile(w http.ResponseWriter, r *http.Request) {
	var data patientProfileData
	var msgs []flash.Message

	profile, err := h.api.PatientProfile(r.Context(), sessionOf(r).Token())
	switch {
	case err != nil:
		msgs = append(msgs, flash.FromError(err, "Failed to load profile."))
	case profile.Missing():
		msgs = append(msgs, flash.New(flash.Info, "No profile yet. Please complete your profile."))
	default:
		data.Profile = profile
	}

	h.render(w, r, "patient_profile", data, msgs...)
}

func (h *Handler) SavePatientProfile(w http.ResponseWriter, r *http.Request) {
	form := models.PatientProfileForm{
		FullName: formString(r, "full_name"),
		Age:      formInt(r, "age"),
		Contact:  formString(r, "contact"),
		Address:  formString(r, "address"),
	}
	if err := models.ValidateStruct(form); err != nil {
		h.redirect(w, r, router.PathPatientProfile, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	sh := sessionOf(r)
	started := time.Now()
	ack, err := h.api.SavePatientProfile(r.Context(), sh.Token(), form)
	h.record(r, "profile.save", "patient", strconv.FormatInt(sh.UserID(), 10), started, err)
	h.redirect(w, r, router.PathPatientProfile, outcome(ack, err, "Profile saved.", "Failed to save profile."))
}

func (h *Handler) PatientDoctors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := patientDoctorsData{
		SpecializationID: queryInt64(r, "specialization_id"),
		Query:            r.URL.Query().Get("q"),
		Today:            time.Now().Format("2006-01-02"),
	}

	depts := views.NewListState[models.Department]("Failed to load departments.")
	depts.Apply(h.api.Departments(ctx))
	doctors := views.NewListState[models.DoctorProfile]("Failed to search doctors.")
	doctors.Apply(h.api.SearchDoctors(ctx, sessionOf(r).Token(), data.SpecializationID, data.Query))

	data.Departments = depts.Items
	data.Doctors = doctors.Items
	h.render(w, r, "patient_doctors", data, banners(depts.Flash, doctors.Flash)...)
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	form := models.BookingForm{
		DoctorID:     formInt64(r, "doctor_id"),
		DepartmentID: formInt64(r, "department_id"),
		Date:         formString(r, "date"),
		Time:         clockTime(formString(r, "time")),
	}
	if err := models.ValidateStruct(form); err != nil {
		h.redirect(w, r, router.PathPatientDoctors, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	resp, err := h.api.BookAppointment(r.Context(), sessionOf(r).Token(), form)
	h.record(r, "appointment.book", "doctor", strconv.FormatInt(form.DoctorID, 10), started, err)
	if err != nil {
		h.redirect(w, r, router.PathPatientDoctors, flash.FromError(err, "Failed to book appointment."))
		return
	}
	h.redirect(w, r, router.PathPatientAppointments, outcome(models.Ack{Message: resp.Message}, nil, "Appointment booked.", ""))
}

func (h *Handler) PatientAppointments(w http.ResponseWriter, r *http.Request) {
	list := views.NewListState[models.Appointment]("Failed to load appointments.")
	list.Apply(h.api.PatientAppointments(r.Context(), sessionOf(r).Token()))

	q := r.URL.Query().Get("q")
	h.render(w, r, "patient_appointments", appointmentsData{
		Query:        q,
		Appointments: views.Filter(list.Items, q, appointmentFields),
	}, banners(list.Flash)...)
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathPatientAppointments, flash.New(flash.Danger, "Unknown appointment."))
		return
	}

	started := time.Now()
	ack, err := h.api.CancelAppointment(r.Context(), sessionOf(r).Token(), id)
	h.record(r, "appointment.cancel", "appointment", strconv.FormatInt(id, 10), started, err)
	h.redirect(w, r, router.PathPatientAppointments, outcome(ack, err, "Appointment cancelled.", "Failed to cancel appointment."))
}

func (h *Handler) PatientTreatments(w http.ResponseWriter, r *http.Request) {
	list := views.NewListState[models.Treatment]("Failed to load treatments.")
	list.Apply(h.api.Treatments(r.Context(), sessionOf(r).Token()))

	q := r.URL.Query().Get("q")
	h.render(w, r, "patient_treatments", treatmentsData{
		Query:      q,
		Treatments: views.Filter(list.Items, q, treatmentFields),
	}, banners(list.Flash)...)
}

// ExportTreatments queues the CSV export; the file is fetched later by DownloadTreatments
func (h *Handler) ExportTreatments(w http.ResponseWriter, r *http.Request) {
	sh := sessionOf(r)
	started := time.Now()
	ack, err := h.api.ExportTreatments(r.Context(), sh.Token())
	h.record(r, "treatments.export", "patient", strconv.FormatInt(sh.UserID(), 10), started, err)
	h.redirect(w, r, router.PathPatientTreatments, outcome(ack, err, "Export started. Download it in a moment.", "Failed to start export."))
}

func (h *Handler) DownloadTreatments(w http.ResponseWriter, r *http.Request) {
	sh := sessionOf(r)
	if sh.UserID() == 0 {
		h.redirect(w, r, router.PathPatientTreatments, flash.New(flash.Danger, "Could not determine your account. Please log in again."))
		return
	}

	d, err := h.api.DownloadFile(r.Context(), sh.Token(), treatmentsFile(sh.UserID()))
	if err != nil {
		h.redirect(w, r, router.PathPatientTreatments, flash.FromError(err, "Export not ready yet. Please try again shortly."))
		return
	}
	stream(w, d)
}

// treatmentsFile is the name the API's export task writes
func treatmentsFile(userID int64) string {
	return fmt.Sprintf("patient_%d_treatments.csv", userID)
}
