package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/views"
)

type serviceRow struct {
	models.ServiceRequest
	ServiceName      string
	ProfessionalName string
}

type servicesData struct {
	ServiceType  string
	ServiceTypes []string
	Services     []models.Service
	Requests     []serviceRow
}

type serviceRequestData struct {
	Request models.ServiceRequestDetail
}

type serviceSearchData struct {
	Form     models.ServiceSearchForm
	Results  []models.Professional
	Searched bool
}

type serviceSummaryData struct {
	Chart views.Chart
}

// Services is the home-services marketplace: the catalogue, optionally
// narrowed to one service type, and the patient's request history.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("service_type")
	if !slices.Contains(views.ServiceTypes, serviceType) {
		serviceType = ""
	}
	data := servicesData{ServiceType: serviceType, ServiceTypes: views.ServiceTypes}

	var msgs []flash.Message
	dash, err := h.api.CustomerDashboard(r.Context(), sessionOf(r).Token(), serviceType)
	if err != nil {
		msgs = append(msgs, flash.FromError(err, "Failed to load services."))
	}

	data.Services = dash.Services
	for _, req := range dash.ServiceRequests {
		data.Requests = append(data.Requests, serviceRow{
			ServiceRequest:   req,
			ServiceName:      dash.ServiceDict[strconv.FormatInt(req.ServiceID, 10)],
			ProfessionalName: dash.ProfDict[strconv.FormatInt(req.ProfessionalID, 10)],
		})
	}

	h.render(w, r, "services", data, msgs...)
}

func (h *Handler) RequestService(w http.ResponseWriter, r *http.Request) {
	serviceID := formInt64(r, "service_id")
	if serviceID <= 0 {
		h.redirect(w, r, router.PathPatientServices, flash.New(flash.Danger, "Unknown service."))
		return
	}

	started := time.Now()
	ack, err := h.api.CreateServiceRequest(r.Context(), sessionOf(r).Token(), serviceID)
	h.record(r, "service.request", "service", strconv.FormatInt(serviceID, 10), started, err)
	h.redirect(w, r, router.PathPatientServices, outcome(ack, err, "Service requested.", "Failed to request service."))
}

func (h *Handler) CloseServiceRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathPatientServices, flash.New(flash.Danger, "Unknown service request."))
		return
	}

	started := time.Now()
	ack, err := h.api.CloseServiceRequest(r.Context(), sessionOf(r).Token(), id)
	h.record(r, "service.close", "service_request", strconv.FormatInt(id, 10), started, err)
	h.redirect(w, r, router.PathPatientServices, outcome(ack, err, "Service request closed.", "Failed to close service request."))
}

func (h *Handler) ServiceRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathPatientServices, flash.New(flash.Danger, "Unknown service request."))
		return
	}

	var msgs []flash.Message
	detail, err := h.api.ServiceRequest(r.Context(), sessionOf(r).Token(), id)
	if err != nil {
		msgs = append(msgs, flash.FromError(err, "Failed to load service request."))
		detail.ID = id
	}
	h.render(w, r, "service_request", serviceRequestData{Request: detail}, msgs...)
}

func (h *Handler) ReviewServiceRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.redirect(w, r, router.PathPatientServices, flash.New(flash.Danger, "Unknown service request."))
		return
	}

	form := models.ReviewForm{RequestID: id, Remarks: formString(r, "remarks"), Rating: formInt(r, "rating")}
	back := router.PathPatientServices + "/requests/" + strconv.FormatInt(id, 10)
	if err := models.ValidateStruct(form); err != nil {
		h.redirect(w, r, back, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	started := time.Now()
	ack, err := h.api.ReviewServiceRequest(r.Context(), sessionOf(r).Token(), form)
	h.record(r, "service.review", "service_request", strconv.FormatInt(id, 10), started, err)
	if err != nil {
		h.redirect(w, r, back, flash.FromError(err, "Failed to submit review."))
		return
	}
	h.redirect(w, r, router.PathPatientServices, outcome(ack, nil, "Service request closed. Thank you for your review.", ""))
}

func (h *Handler) ServiceSearchPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "service_search", serviceSearchData{Form: models.ServiceSearchForm{SearchType: "service"}})
}

func (h *Handler) ServiceSearch(w http.ResponseWriter, r *http.Request) {
	data := serviceSearchData{Form: models.ServiceSearchForm{
		SearchType: formString(r, "search_type"),
		SearchText: formString(r, "search_text"),
	}}
	if err := models.ValidateStruct(data.Form); err != nil {
		h.render(w, r, "service_search", data, flash.New(flash.Warning, models.ValidationMessage(err)))
		return
	}

	var msgs []flash.Message
	res, err := h.api.SearchProfessionals(r.Context(), sessionOf(r).Token(), data.Form)
	if err != nil {
		msgs = append(msgs, flash.FromError(err, "Search failed."))
	} else {
		data.Results = res.Data.ServiceProfessional
		data.Searched = true
	}
	h.render(w, r, "service_search", data, msgs...)
}

// ServiceSummary charts the patient's service requests per day. The user id
// comes from the API's view of the token claims.
func (h *Handler) ServiceSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := sessionOf(r).Token()
	data := serviceSummaryData{Chart: views.Chart{ID: "serviceSummary", Type: "bar", Title: "Request Count"}}

	var msgs []flash.Message
	claims, err := h.api.Claims(ctx, token)
	userID, ok := claims.UserID()
	switch {
	case err != nil:
		msgs = append(msgs, flash.FromError(err, "Failed to load your account."))
	case !ok:
		msgs = append(msgs, flash.New(flash.Danger, "Your login does not carry a user id."))
	default:
		points, err := h.api.ServiceRequestSummary(ctx, token, userID)
		if err != nil {
			msgs = append(msgs, flash.FromError(err, "Failed to load summary."))
			break
		}
		for _, p := range points {
			data.Chart.Labels = append(data.Chart.Labels, p.Date)
			data.Chart.Counts = append(data.Chart.Counts, p.Count)
		}
	}

	h.render(w, r, "service_summary", data, msgs...)
}
