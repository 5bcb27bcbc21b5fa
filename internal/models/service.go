package models

// Service is a bookable home service in the customer marketplace
type Service struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	BasePrice    float64 `json:"base_price,omitempty"`
	ServiceType  string  `json:"service_type,omitempty"`
	TimeRequired string  `json:"time_required,omitempty"`
}

type ServiceRequest struct {
	ID               int64  `json:"id"`
	ServiceID        int64  `json:"service_id"`
	ProfessionalID   int64  `json:"professional_id,omitempty"`
	CustomerID       int64  `json:"customer_id,omitempty"`
	DateOfRequest    string `json:"date_of_request,omitempty"`
	DateOfCompletion string `json:"date_of_completion,omitempty"`
	ServiceStatus    string `json:"service_status"`
	Remarks          string `json:"remarks,omitempty"`
	Rating           int    `json:"rating,omitempty"`
}

func (r ServiceRequest) Completed() bool { return r.ServiceStatus == "completed" }

// CustomerDashboard is GET /customer/dashboard. The dicts map ids (as JSON keys) to names.
type CustomerDashboard struct {
	Services        []Service         `json:"services"`
	ServiceRequests []ServiceRequest  `json:"service_requests"`
	ServiceDict     map[string]string `json:"service_dict"`
	ProfDict        map[string]string `json:"prof_dict"`
}

// ServiceRequestDetail backs the close-and-review form
type ServiceRequestDetail struct {
	ID                 int64  `json:"id"`
	ServiceName        string `json:"service_name"`
	FullName           string `json:"full_name"`
	ServiceDescription string `json:"service_description"`
	Remarks            string `json:"remarks,omitempty"`
	Rating             int    `json:"rating,omitempty"`
}

// SummaryPoint is one bar of the per-day service request summary
type SummaryPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Professional struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	ServiceType string `json:"service_type,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Address     string `json:"address,omitempty"`
	PinCode     string `json:"pin_code,omitempty"`
}

type ProfessionalSearch struct {
	Message string `json:"message"`
	Data    struct {
		ServiceProfessional []Professional `json:"service_professional"`
	} `json:"data"`
}
