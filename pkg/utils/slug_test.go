package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"simple", []string{"Angkor Wat"}, "angkor-wat"},
		{"joins parts", []string{"Angkor Wat", "Siem Reap"}, "angkor-wat-siem-reap"},
		{"collapses punctuation", []string{"St. Paul's -- Cathedral"}, "st-paul-s-cathedral"},
		{"trims edges", []string{"  (Hidden) Beach!  "}, "hidden-beach"},
		{"keeps digits", []string{"Route 66"}, "route-66"},
		{"unicode letters survive", []string{"Café São"}, "café-são"},
		{"empty input", []string{""}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.parts...))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}
