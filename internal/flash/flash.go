// Package flash holds the short-lived status banners shown above console pages.
package flash

import (
	"errors"
	"strings"
)

// Category is the banner severity; it doubles as the Bootstrap alert class suffix
type Category string

const (
	Success Category = "success"
	Info    Category = "info"
	Warning Category = "warning"
	Danger  Category = "danger"
)

// Message is a flash banner
type Message struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

func New(category Category, text string) Message {
	return Message{Text: text, Category: category}
}

// ParseCategory accepts the categories the backend sends and falls back when unknown
func ParseCategory(s string, fallback Category) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Success, Info, Warning, Danger:
		return c
	default:
		return fallback
	}
}

// Describer is implemented by errors that carry a server-provided banner
type Describer interface {
	error
	FlashMessage() (text string, category string)
}

// FromError collapses transport, status and decode failures into one banner.
// Server-provided text wins over fallback; the category defaults to danger.
func FromError(err error, fallback string) Message {
	var d Describer
	if errors.As(err, &d) {
		text, category := d.FlashMessage()
		if text == "" {
			text = fallback
		}
		return Message{Text: text, Category: ParseCategory(category, Danger)}
	}
	return Message{Text: fallback, Category: Danger}
}
