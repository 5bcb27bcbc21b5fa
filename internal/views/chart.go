package views

import (
	"html/template"

	"github.com/goccy/go-json"
)

// Chart is a label/count series ready for Chart.js
type Chart struct {
	ID     string
	Type   string // bar, doughnut
	Title  string
	Labels []string
	Counts []int
}

// GroupCount counts records per key, keeping labels in first-seen order
func GroupCount[T any](records []T, key func(T) string) (labels []string, counts []int) {
	index := make(map[string]int)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(labels)
			index[k] = i
			labels = append(labels, k)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return labels, counts
}

// NewChart aggregates records into a chart
func NewChart[T any](id, kind, title string, records []T, key func(T) string) Chart {
	labels, counts := GroupCount(records, key)
	return Chart{ID: id, Type: kind, Title: title, Labels: labels, Counts: counts}
}

// Empty reports whether there is nothing to plot
func (c Chart) Empty() bool {
	return len(c.Labels) == 0
}

var palette = []string{
	"rgba(75,192,192,0.5)",
	"rgba(255,159,64,0.5)",
	"rgba(255,99,132,0.5)",
	"rgba(153,102,255,0.5)",
	"rgba(54,162,235,0.4)",
}

// Config renders the Chart.js configuration object
func (c Chart) Config() (template.JS, error) {
	dataset := map[string]any{
		"label":       c.Title,
		"data":        nonNil(c.Counts),
		"borderWidth": 1,
	}
	options := map[string]any{"responsive": true}

	switch c.Type {
	case "doughnut":
		dataset["backgroundColor"] = palette
		options["plugins"] = map[string]any{"legend": map[string]any{"position": "bottom"}}
	default:
		dataset["backgroundColor"] = "rgba(54, 162, 235, 0.4)"
		dataset["borderColor"] = "rgba(54, 162, 235, 1)"
		options["scales"] = map[string]any{"y": map[string]any{"beginAtZero": true}}
	}

	raw, err := json.Marshal(map[string]any{
		"type": c.Type,
		"data": map[string]any{
			"labels":   nonNil(c.Labels),
			"datasets": []any{dataset},
		},
		"options": options,
	})
	if err != nil {
		return "", err
	}
	return template.JS(raw), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
