package models

// Appointment statuses set by the API
const (
	StatusBooked    = "Booked"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Appointment struct {
	ID           int64  `json:"id"`
	PatientID    int64  `json:"patient_id,omitempty"`
	DoctorID     int64  `json:"doctor_id,omitempty"`
	DepartmentID int64  `json:"department_id,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks,omitempty"`
}

func (a Appointment) Booked() bool { return a.Status == StatusBooked }

type Treatment struct {
	TreatmentID     int64  `json:"treatment_id"`
	AppointmentID   int64  `json:"appointment_id"`
	AppointmentDate string `json:"appointment_date"`
	Diagnosis       string `json:"diagnosis"`
	Prescription    string `json:"prescription"`
	Notes           string `json:"notes"`
}

// BookingResponse is returned by POST /patient/appointments/book
type BookingResponse struct {
	Message       string `json:"message"`
	AppointmentID int64  `json:"appointment_id"`
}
