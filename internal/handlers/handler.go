// Package handlers serves the console's pages and JSON endpoints.
package handlers

import (
	"net/http"
	"time"

	"github.com/otcheredev/hms-console/internal/client"
	"github.com/otcheredev/hms-console/internal/flash"
	"github.com/otcheredev/hms-console/internal/models"
	"github.com/otcheredev/hms-console/internal/services"
	"github.com/otcheredev/hms-console/internal/shell"
	"github.com/otcheredev/hms-console/internal/views"
	"github.com/rs/zerolog/log"
)

// Options tune page behaviour
type Options struct {
	// ReportPoll is how often the reports page reloads its listing
	ReportPoll time.Duration
}

// Handler serves the console pages. Every page fetches from the API with
// the session's bearer token; a failed fetch becomes a danger banner and
// the page renders with whatever it already has.
type Handler struct {
	api   *client.Client
	views *views.Renderer
	audit *services.AuditService
	opts  Options
}

func New(api *client.Client, renderer *views.Renderer, audit *services.AuditService, opts Options) *Handler {
	if opts.ReportPoll <= 0 {
		opts.ReportPoll = 10 * time.Second
	}
	return &Handler{api: api, views: renderer, audit: audit, opts: opts}
}

// sessionOf returns the shell attached by the session middleware
func sessionOf(r *http.Request) *shell.Shell {
	sh, ok := shell.FromContext(r.Context())
	if !ok {
		panic("handlers: request served without session middleware")
	}
	return sh
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any, msgs ...flash.Message) {
	h.renderPage(w, r, name, views.Page{Data: data, Flashes: msgs})
}

// renderPage fills the session fields of page, prepends a pending flash
// left by a redirect, and writes the template.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, page views.Page) {
	sh := sessionOf(r)

	page.Path = r.URL.Path
	page.Authenticated = sh.Authenticated()
	page.Role = sh.Role().String()
	if page.Authenticated {
		page.DisplayName = sh.DisplayName()
	}

	var msgs []flash.Message
	if pending, ok, err := sh.Store().PopFlash(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Failed to read pending flash")
	} else if ok {
		msgs = append(msgs, pending)
	}
	page.Flashes = dedupe(append(msgs, page.Flashes...))

	if err := h.views.Render(w, http.StatusOK, name, page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// redirect stores msg for the next page and sends the browser to target
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string, msg flash.Message) {
	if msg.Text != "" {
		if err := sessionOf(r).Store().SetFlash(r.Context(), msg); err != nil {
			log.Warn().Err(err).Msg("Failed to store flash")
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// record writes an audit row for a mutating action
func (h *Handler) record(r *http.Request, action, resourceType, resourceID string, started time.Time, err error) {
	sh := sessionOf(r)
	h.audit.Record(r.Context(), services.Action{
		SessionID:    sh.ID(),
		Role:         sh.Role().String(),
		Actor:        sh.DisplayName(),
		Name:         action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    r.RemoteAddr,
		UserAgent:    r.UserAgent(),
		Started:      started,
		Err:          err,
	})
}

// outcome turns an API mutation result into the banner to show next:
// the server's own message and category when it sent one.
func outcome(ack models.Ack, err error, success, failure string) flash.Message {
	if err != nil {
		return flash.FromError(err, failure)
	}
	text := ack.Message
	if text == "" {
		text = success
	}
	return flash.New(flash.ParseCategory(ack.Category, flash.Success), text)
}

// banners collects the non-nil fetch failures of a page
func banners(msgs ...*flash.Message) []flash.Message {
	out := make([]flash.Message, 0, len(msgs))
	for _, m := range msgs {
		if m != nil && m.Text != "" {
			out = append(out, *m)
		}
	}
	return out
}

func dedupe(msgs []flash.Message) []flash.Message {
	seen := make(map[flash.Message]struct{}, len(msgs))
	out := msgs[:0]
	for _, m := range msgs {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
