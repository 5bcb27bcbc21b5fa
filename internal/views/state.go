package views

import "github.com/otcheredev/hms-console/internal/flash"

const defaultFailure = "Failed to load data."

// ListState is a page's fetched list plus its banner. Items are only
// replaced by a successful fetch; a failure only sets the banner.
type ListState[T any] struct {
	Items    []T
	Flash    *flash.Message
	fallback string
}

// NewListState starts an empty list; fallback is the banner text used when
// a failed fetch carries no server message.
func NewListState[T any](fallback string) *ListState[T] {
	return &ListState[T]{fallback: fallback}
}

// Apply records the outcome of a fetch. It takes a fetch's results
// directly: list.Apply(api.Doctors(ctx, token)).
func (s *ListState[T]) Apply(items []T, err error) {
	if err != nil {
		fallback := s.fallback
		if fallback == "" {
			fallback = defaultFailure
		}
		msg := flash.FromError(err, fallback)
		s.Flash = &msg
		return
	}
	s.Items = items
	s.Flash = nil
}

// Failed reports whether the last fetch set an error banner
func (s *ListState[T]) Failed() bool {
	return s.Flash != nil && s.Flash.Category == flash.Danger
}
