package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventboard/internal/domain"
)

var (
	slugQuoteRe = regexp.MustCompile("['\"‘’“”]")
	slugSepRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, straight and curly
// quotes removed, runs of non-alphanumeric characters collapsed to single
// hyphens, leading and trailing hyphens stripped. Deterministic; returns ""
// when the title contains no alphanumeric characters.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugQuoteRe.ReplaceAllString(s, "")
	s = slugSepRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// dateLayouts are tried in order. Numeric dates are month-first; two-digit
// years are rejected.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// NormalizeDate parses a calendar date in any accepted layout and returns it
// as "YYYY-MM-DD" in UTC.
func NormalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", &domain.ValidationError{Field: "date", Reason: "unrecognized date format"}
}

var (
	time24Re = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)(?::[0-5]\d)?$`)
	time12Re = regexp.MustCompile(`(?i)^(1[0-2]|0?[1-9]):([0-5]\d)\s*(am|pm)$`)
)

// NormalizeTime converts "HH:mm", "HH:mm:ss", or "h:mm AM/PM"
// (case-insensitive) to zero-padded 24-hour "HH:mm". Seconds are dropped.
func NormalizeTime(input string) (string, error) {
	s := strings.TrimSpace(input)
	if m := time24Re.FindStringSubmatch(s); m != nil {
		hh := m[1]
		if len(hh) == 1 {
			hh = "0" + hh
		}
		return hh + ":" + m[2], nil
	}
	if m := time12Re.FindStringSubmatch(s); m != nil {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return "", &domain.ValidationError{Field: "time", Reason: "unrecognized time format"}
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if h != 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		return fmt.Sprintf("%02d:%s", h, m[2]), nil
	}
	return "", &domain.ValidationError{Field: "time", Reason: "unrecognized time format"}
}

// emailRe accepts local@domain with at least one dot in the domain and no
// internal whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
