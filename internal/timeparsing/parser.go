// Package timeparsing turns user-entered dates into catalog timestamps.
//
// Parsing is layered; the first layer that accepts the input wins:
//  1. Compact duration (+6h, -1d, +2w)
//  2. Absolute timestamp (catalog layout, RFC3339, date-only)
//  3. Natural language (yesterday, next monday)
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// compactDurationRe matches compact duration patterns: [+-]?(\d+)([hdwmy])
// Examples: +6h, -1d, +2w, 3m, 1y
var compactDurationRe = regexp.MustCompile(`^([+-]?)(\d+)([hdwmy])$`)

// ParseCompactDuration parses compact duration syntax and returns the resulting time.
//
// Units: h hours, d days, w weeks, m months, y years. No sign means positive.
func ParseCompactDuration(s string, now time.Time) (time.Time, error) {
	matches := compactDurationRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("not a compact duration: %q", s)
	}

	amount, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration amount: %q", matches[2])
	}
	if matches[1] == "-" {
		amount = -amount
	}

	return applyDuration(now, amount, matches[3]), nil
}

// applyDuration applies the given amount and unit to the base time.
func applyDuration(base time.Time, amount int, unit string) time.Time {
	switch unit {
	case "h":
		return base.Add(time.Duration(amount) * time.Hour)
	case "d":
		return base.AddDate(0, 0, amount)
	case "w":
		return base.AddDate(0, 0, amount*7)
	case "m":
		return base.AddDate(0, amount, 0)
	case "y":
		return base.AddDate(amount, 0, 0)
	default:
		return base
	}
}

// IsCompactDuration returns true if the string matches compact duration syntax.
func IsCompactDuration(s string) bool {
	return compactDurationRe.MatchString(s)
}

var absoluteLayouts = []string{
	types.TimestampLayout,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseAbsolute(s string) (time.Time, bool) {
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var nlp = newNLP()

func newNLP() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseNaturalLanguage understands phrases like "yesterday" or "next monday".
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	r, err := nlp.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("not a recognised date: %q", s)
	}
	return r.Time, nil
}

// ParseRelativeTime runs the layers in order and returns the first match.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if IsCompactDuration(s) {
		return ParseCompactDuration(s, now)
	}
	if t, ok := parseAbsolute(s); ok {
		return t, nil
	}
	return ParseNaturalLanguage(strings.ToLower(s), now)
}

// NormalizeDateAdded converts user input into a Date_added value. Input that
// is already in the catalog layout is returned untouched.
func NormalizeDateAdded(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(types.TimestampLayout, s); err == nil {
		return s, nil
	}
	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return "", fmt.Errorf("%w: date_added: %v", types.ErrValidation, err)
	}
	return types.FormatTimestamp(t), nil
}
