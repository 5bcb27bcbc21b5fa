package models

// Console form payloads. The json tags are the API's field names.

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=patient doctor"`
}

type NewDoctor struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty"`
}

type DoctorUpdate struct {
	Approve bool `json:"approve"`
	Blocked bool `json:"blocked"`
}

// UserAction is the body of POST /admin/block_user/{id}
type UserAction struct {
	Action string `json:"action" validate:"required,oneof=approve reject block unblock"`
}

type DoctorProfileForm struct {
	SpecializationID int64  `json:"specialization_id" validate:"required,gt=0"`
	Experience       string `json:"experience" validate:"required,numeric"`
	Availability     string `json:"availability"`
}

type PatientProfileForm struct {
	FullName string `json:"full_name" validate:"required"`
	Age      int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Contact  string `json:"contact,omitempty" validate:"omitempty,max=15"`
	Address  string `json:"address" validate:"required"`
}

// CompletionForm closes an appointment; at least one of diagnosis or prescription is needed
type CompletionForm struct {
	Diagnosis    string `json:"diagnosis" validate:"required_without=Prescription"`
	Prescription string `json:"prescription" validate:"required_without=Diagnosis"`
	Notes        string `json:"notes"`
}

type BookingForm struct {
	DoctorID     int64  `json:"doctor_id" validate:"required,gt=0"`
	DepartmentID int64  `json:"department_id,omitempty"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,datetime=15:04:05"`
}

type ReviewForm struct {
	RequestID int64  `json:"request_id" validate:"required,gt=0"`
	Remarks   string `json:"remarks" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
}

type ServiceSearchForm struct {
	SearchType string `json:"search_type" validate:"required,oneof=service pin_code address"`
	SearchText string `json:"search_text" validate:"required"`
}

type ExportForm struct {
	ProfessionalID int64 `validate:"required,gt=0"`
}
