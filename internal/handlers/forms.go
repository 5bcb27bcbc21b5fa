package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
)

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formInt64 returns 0 for a missing or malformed value
func formInt64(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(formString(r, key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func formInt(r *http.Request, key string) int {
	return int(formInt64(r, key))
}

// formBool reads a checkbox; an unchecked box is absent from the form
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(formString(r, key)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

func queryInt64(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(key)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// urlID parses a positive numeric route parameter
func urlID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// safeReturn accepts only local absolute paths, so a form cannot send the
// browser to another host. Control characters are refused outright since
// browsers strip tabs and newlines before resolving a Location.
func safeReturn(target, fallback string) string {
	if strings.IndexFunc(target, unicode.IsControl) >= 0 {
		return fallback
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

// clockTime normalises a browser time input (HH:MM) to the API's HH:MM:SS
func clockTime(s string) string {
	if len(s) == len("15:04") {
		return s + ":00"
	}
	return s
}
