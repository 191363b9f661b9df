// Package content holds the landing page's static tables: features,
// testimonials, stats and demo highlights. The tables are compiled into the
// binary and never change at runtime.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

var Module = fx.Module("content",
	fx.Provide(Load),
)

//go:embed content.yaml
var raw []byte

// MaxRating is the number of stars a testimonial is rated out of.
const MaxRating = 5

type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
	HoverColor  string `yaml:"hover_color"`
}

type Testimonial struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
	Avatar  string `yaml:"avatar"`
	Rating  int    `yaml:"rating"`
}

// Stars returns the number of filled stars, clamped to [0, MaxRating].
func (t Testimonial) Stars() int {
	return min(max(t.Rating, 0), MaxRating)
}

// Stat is a headline counter. Value is display text and may be non-numeric.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type DemoHighlight struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Tables is the full set of landing page content in display order.
type Tables struct {
	Features       []Feature       `yaml:"features"`
	Testimonials   []Testimonial   `yaml:"testimonials"`
	Stats          []Stat          `yaml:"stats"`
	DemoHighlights []DemoHighlight `yaml:"demo_highlights"`
}

// Load parses the embedded tables.
func Load() (*Tables, error) {
	return Parse(raw)
}

// Parse decodes and validates content tables from YAML.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse content tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) validate() error {
	var errs []error
	if len(t.Features) == 0 {
		errs = append(errs, errors.New("content: no features"))
	}
	for i, f := range t.Features {
		if f.Title == "" {
			errs = append(errs, fmt.Errorf("content: feature %d has no title", i))
		}
	}
	for i, tm := range t.Testimonials {
		if tm.Name == "" || tm.Content == "" {
			errs = append(errs, fmt.Errorf("content: testimonial %d is missing name or content", i))
		}
	}
	for i, s := range t.Stats {
		if s.Value == "" || s.Label == "" {
			errs = append(errs, fmt.Errorf("content: stat %d is missing value or label", i))
		}
	}
	return errors.Join(errs...)
}
