package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"React Conf 2024", "react-conf-2024"},
		{"  Hello,   World!  ", "hello-world"},
		{`Rock'n'Roll "Night"`, "rocknroll-night"},
		{"It’s “Go” Time", "its-go-time"},
		{"--already--slugged--", "already-slugged"},
		{"GopherCon", "gophercon"},
		{"2024", "2024"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_DeterministicAndWellFormed(t *testing.T) {
	// A slug contains only lowercase alphanumerics and single interior
	// hyphens; deriving twice yields the same result.
	wellFormed := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	titles := []string{
		"React Conf 2024",
		"Go & Friends: The Meetup",
		"  Data/ML -- Summit  ",
		"Ünïcode Fest 2025",
		"a",
	}
	for _, title := range titles {
		first := Slugify(title)
		require.Equal(t, first, Slugify(title), "slug must be deterministic for %q", title)
		require.True(t, wellFormed.MatchString(first), "malformed slug %q from %q", first, title)
		// Slugifying a slug is a fixed point.
		require.Equal(t, first, Slugify(first))
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-12-10", "2024-12-10", false},
		{"Dec 10, 2024", "2024-12-10", false},
		{"December 10, 2024", "2024-12-10", false},
		{"12/10/2024", "2024-12-10", false},
		// Numeric dates are month-first: this is October 13th, not an error.
		{"10/13/2024", "2024-10-13", false},
		{"2024/12/10", "2024-12-10", false},
		{"10 Dec 2024", "2024-12-10", false},
		{" 2024-12-10 ", "2024-12-10", false},
		{"2024-12-10T09:00:00Z", "2024-12-10", false},
		{"not a date", "", true},
		// Two-digit years are rejected rather than guessed at.
		{"24-12-10", "", true},
		{"13/10/2024", "", true}, // no thirteenth month
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"9:00 AM", "09:00", false},
		{"9:00 am", "09:00", false},
		{"12:30 PM", "12:30", false},
		{"12:00 AM", "00:00", false},
		{"1:05pm", "13:05", false},
		{"09:00", "09:00", false},
		{"9:00", "09:00", false},
		{"21:05:30", "21:05", false},
		{"23:59", "23:59", false},
		{" 10:15 ", "10:15", false},
		{"13:00 PM", "", true}, // hour out of 12-hour range
		{"24:00", "", true},
		{"7:5", "", true},
		{"noon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
