package handlers

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/otcheredev/hms-console/internal/client"
	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/router"
	"github.com/otcheredev/hms-console/internal/views"
	"github.com/rs/zerolog/log"
)

const activityLimit = 100

type reportsData struct {
	Reports     []string
	PollSeconds int
}

type activityData struct {
	Enabled bool
	Filter  models.AuditFilter
	Entries []models.AuditLog
}

// AdminReports lists the generated CSV reports and reloads itself every
// poll interval, so a running export shows up without user action.
func (h *Handler) AdminReports(w http.ResponseWriter, r *http.Request) {
	list := views.NewListState[string]("Failed to load reports.")
	reports, err := h.api.Reports(r.Context(), sessionOf(r).Token())
	list.Apply(reports.Downloads, err)

	poll := int(h.opts.ReportPoll / time.Second)
	h.renderPage(w, r, "admin_reports", views.Page{
		Refresh: poll,
		Data:    reportsData{Reports: list.Items, PollSeconds: poll},
		Flashes: banners(list.Flash),
	})
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	form := models.ExportForm{ProfessionalID: formInt64(r, "professional_id")}
	if err := models.ValidateStruct(form); err != nil {
		h.redirect(w, r, router.PathAdminReports, flash.New(flash.Danger, "Please enter a valid professional ID!"))
		return
	}

	started := time.Now()
	ack, err := h.api.TriggerExport(r.Context(), sessionOf(r).Token(), form.ProfessionalID)
	h.record(r, "report.export", "doctor", strconv.FormatInt(form.ProfessionalID, 10), started, err)
	h.redirect(w, r, router.PathAdminReports, outcome(ack, err, "Export started.", "Failed to start export."))
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	name, ok := reportName(chi.URLParam(r, "file"))
	if !ok {
		h.redirect(w, r, router.PathAdminReports, flash.New(flash.Danger, "Unknown report."))
		return
	}

	d, err := h.api.DownloadReport(r.Context(), sessionOf(r).Token(), name)
	if err != nil {
		h.redirect(w, r, router.PathAdminReports, flash.FromError(err, "Failed to download report."))
		return
	}
	stream(w, d)
}

// AdminActivity shows the console's own audit trail, filtered by the
// role, status and action query parameters.
func (h *Handler) AdminActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := activityData{
		Enabled: h.audit.Enabled(),
		Filter: models.AuditFilter{
			Role:   strings.TrimSpace(q.Get("role")),
			Status: strings.TrimSpace(q.Get("status")),
			Action: strings.TrimSpace(q.Get("action")),
		},
	}

	var msgs []flash.Message
	entries, err := h.audit.Recent(r.Context(), data.Filter, activityLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load audit logs")
		msgs = append(msgs, flash.New(flash.Danger, "Failed to load activity."))
	}
	data.Entries = entries

	h.render(w, r, "admin_activity", data, msgs...)
}

// reportName rejects anything that is not a bare file name
func reportName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" || name != path.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return name, true
}

// stream copies an API download to the browser as an attachment
func stream(w http.ResponseWriter, d *client.Download) {
	defer d.Body.Close()

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	if d.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(d.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, d.Body); err != nil {
		log.Warn().Err(err).Str("file", d.Filename).Msg("Download interrupted")
	}
}
