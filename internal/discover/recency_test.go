package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePostedAge(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantDays int
		wantOK   bool
	}{
		{"hours ago", "3 hours ago", 0, true},
		{"an hour ago", "an hour ago", 0, true},
		{"minutes ago", "42 minutes ago", 0, true},
		{"just now", "just now", 0, true},
		{"just posted", "Just posted", 0, true},
		{"today", "Posted today", 0, true},
		{"one day", "1 day ago", 1, true},
		{"days", "12 days ago", 12, true},
		{"thirty plus days", "30+ days ago", 30, true},
		{"weeks", "2 weeks ago", 14, true},
		{"months", "3 months ago", 90, true},
		{"mixed case", "Posted 5 Days Ago", 5, true},
		{"embedded in card text", "Acme Corp · Remote · 4 days ago · 23 applicants", 4, true},
		{"empty", "", 0, false},
		{"no phrase", "Senior Go Engineer at Acme", 0, false},
		{"absolute date", "Posted on March 3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := ParsePostedAge(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDays, days)
			}
		})
	}
}
