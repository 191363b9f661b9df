package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedTables(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	assert.Len(t, tables.Features, 6)
	assert.Len(t, tables.Testimonials, 3)
	assert.Len(t, tables.Stats, 4)
	assert.Len(t, tables.DemoHighlights, 3)

	assert.Equal(t, "Real-time Video", tables.Features[0].Title)
	assert.Equal(t, "Scheduling", tables.Features[5].Title)
	assert.Equal(t, "24/7", tables.Stats[3].Value)
	assert.Equal(t, 4, tables.Testimonials[2].Rating)
}

func TestTestimonialStars(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{4, 4},
		{5, 5},
		{9, 5},
	}

	for _, tt := range tests {
		got := Testimonial{Rating: tt.rating}.Stars()
		assert.Equal(t, tt.want, got, "rating %d", tt.rating)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "features: [oops"},
		{"no features", "stats:\n  - value: 1\n    label: x\n"},
		{"untitled feature", "features:\n  - description: nothing\n"},
		{"incomplete stat", "features:\n  - title: A\nstats:\n  - value: 1\n"},
		{"anonymous testimonial", "features:\n  - title: A\ntestimonials:\n  - content: great\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
