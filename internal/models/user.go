package models

// Doctor is a doctor account as listed by the admin API
type Doctor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Approve  bool   `json:"approve"`
	Blocked  bool   `json:"blocked"`
}

// DoctorDetail is GET /admin/doctors/{id}
type DoctorDetail struct {
	Doctor
	Profile *DoctorProfile `json:"profile"`
}

// DoctorProfile is the doctor's self-maintained profile. Message is set
// instead of the fields when no profile exists yet.
type DoctorProfile struct {
	ID               int64  `json:"id,omitempty"`
	UserID           int64  `json:"user_id,omitempty"`
	Username         string `json:"username,omitempty"`
	SpecializationID int64  `json:"specialization_id,omitempty"`
	Experience       string `json:"experience,omitempty"`
	Availability     string `json:"availability,omitempty"`
	Message          string `json:"message,omitempty"`
}

// Patient is a patient account; Profile is filled by a second lookup
type Patient struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Blocked  bool            `json:"blocked"`
	Profile  *PatientProfile `json:"profile,omitempty"`
}

type PatientProfile struct {
	ID       int64  `json:"id,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Age      int    `json:"age,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Address  string `json:"address,omitempty"`
	Message  string `json:"message,omitempty"`
}

// NoProfileMessage is what the API answers when a profile has not been created
const NoProfileMessage = "no profile"

func (p DoctorProfile) Missing() bool  { return p.Message == NoProfileMessage }
func (p PatientProfile) Missing() bool { return p.Message == NoProfileMessage }

type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AdminProfile struct {
	Message  string `json:"message"`
	Category string `json:"category"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type DashboardStats struct {
	TotalDoctors         int `json:"total_doctors"`
	TotalPatients        int `json:"total_patients"`
	TotalAppointments    int `json:"total_appointments"`
	UpcomingAppointments int `json:"upcoming_appointments"`
}
