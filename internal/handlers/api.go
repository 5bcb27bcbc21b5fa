package handlers

import (
	"errors"
	"net/http"

	"github.com/otcheredev/hms-console/internal/client"
	"github.com/otcheredev/hms-console/internal/flash"
)

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	Home          string `json:"home"`
}

type reportsResponse struct {
	Downloads []string `json:"downloads"`
}

// SessionJSON describes the browser's session; the token never leaves the server
func (h *Handler) SessionJSON(w http.ResponseWriter, r *http.Request) {
	sh := sessionOf(r)
	resp := sessionResponse{Authenticated: sh.Authenticated(), Home: sh.Role().Home()}
	if resp.Authenticated {
		resp.Role = sh.Role().String()
		resp.DisplayName = sh.DisplayName()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReportsJSON is the report listing the reports page polls. A rejected
// bearer token answers 401 so the page reloads into its error banner.
func (h *Handler) ReportsJSON(w http.ResponseWriter, r *http.Request) {
	sh := sessionOf(r)
	if !sh.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, flash.New(flash.Danger, "Not logged in."))
		return
	}

	list, err := h.api.Reports(r.Context(), sh.Token())
	if err != nil {
		writeJSON(w, reportsStatus(err), flash.FromError(err, "Failed to load reports."))
		return
	}

	if list.Downloads == nil {
		list.Downloads = []string{}
	}
	writeJSON(w, http.StatusOK, reportsResponse{Downloads: list.Downloads})
}

// reportsStatus passes client errors through, folding the API's token
// rejections into 401. Anything else is the upstream's fault.
func reportsStatus(err error) int {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	switch {
	case apiErr.Unauthorized():
		return http.StatusUnauthorized
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}
