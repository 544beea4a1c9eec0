package jsonld

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Calendar components of an ISO duration are approximated in days; recipe
// durations never legitimately carry them, but sloppy exports do.
const (
	hoursPerDay   = 24
	daysPerMonth  = 30
	daysPerYear   = 365
	minutesPerHr  = 60
	secondsPerMin = 60
)

var (
	isoDurationRe = regexp.MustCompile(
		`(?i)^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)
	textDurationRe = regexp.MustCompile(
		`(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|h\b|minutes?|mins?|m\b|seconds?|secs?|days?)`)
	bareNumberRe = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// ParseDuration parses an ISO-8601-like duration ("PT1H30M", "P1DT2H")
// with a textual fallback ("6 hours 20 minutes"); a bare integer is
// treated as minutes. Returns false when nothing time-like is present.
func ParseDuration(text string) (time.Duration, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if d, ok := parseISODuration(text); ok {
		return d, true
	}

	if m := bareNumberRe.FindStringSubmatch(text); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil {
			return time.Duration(minutes) * time.Minute, true
		}
	}

	return parseTextDuration(text)
}

// parseISODuration handles the P[n]Y[n]M[n]DT[n]H[n]M[n]S grammar.
// Months and years are treated as 30 and 365 days.
func parseISODuration(text string) (time.Duration, bool) {
	m := isoDurationRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	years := atoiPart(m[1])
	months := atoiPart(m[2])
	weeks := atoiPart(m[3])
	days := atoiPart(m[4])
	hours := atofPart(m[5])
	minutes := atofPart(m[6])
	seconds := atofPart(m[7])

	totalDays := years*daysPerYear + months*daysPerMonth + weeks*7 + days
	total := time.Duration(totalDays*hoursPerDay)*time.Hour +
		time.Duration(hours*float64(time.Hour)) +
		time.Duration(minutes*float64(time.Minute)) +
		time.Duration(seconds*float64(time.Second))

	if total == 0 {
		// "P" alone or all-zero components carry no information.
		return 0, false
	}
	return total, true
}

// parseTextDuration handles "6 hours 20 minutes" style phrasing.
func parseTextDuration(text string) (time.Duration, bool) {
	matches := textDurationRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var total time.Duration
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2][:1]) {
		case "d":
			total += time.Duration(value * float64(hoursPerDay) * float64(time.Hour))
		case "h":
			total += time.Duration(value * float64(time.Hour))
		case "m":
			total += time.Duration(value * float64(time.Minute))
		case "s":
			total += time.Duration(value * float64(time.Second))
		}
	}

	return total, total > 0
}

// FormatDuration renders a duration the way recipe sites write them:
// "1 hour 30 minutes", "45 minutes".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}

	totalMinutes := int(d.Round(time.Minute) / time.Minute)
	hours := totalMinutes / minutesPerHr
	minutes := totalMinutes % minutesPerHr

	var parts []string
	if hours == 1 {
		parts = append(parts, "1 hour")
	} else if hours > 1 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes == 1 {
		parts = append(parts, "1 minute")
	} else if minutes > 1 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}

	return strings.Join(parts, " ")
}

func atoiPart(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofPart(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
