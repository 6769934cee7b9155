// Package extract turns fetched status pages into munin samples.
//
// Each extractor is all-or-nothing: a missing table, row, cell or key fails
// the whole family with a PARSE_ERROR, since munin treats a short output as
// a broken plugin.
package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration converts an uptime cell of the form
// "<days> ...\n<hours> ...\n<minutes> ..." into "<days>.<percent of day>".
// The percentage is truncated toward zero: "5\n2 h\n0 m" gives "5.8".
func ParseDuration(text string) (string, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 3 {
		return "", fmt.Errorf("want days, hours and minutes lines, got %d lines in %q", len(lines), text)
	}

	days := firstToken(lines[0])
	if _, err := strconv.ParseUint(days, 10, 64); err != nil {
		return "", fmt.Errorf("day count %q is not an integer", days)
	}

	hours, err := parseFloatToken(lines[1])
	if err != nil {
		return "", fmt.Errorf("hours: %w", err)
	}
	minutes, err := parseFloatToken(lines[2])
	if err != nil {
		return "", fmt.Errorf("minutes: %w", err)
	}
	if hours < 0 || minutes < 0 {
		return "", fmt.Errorf("negative duration in %q", text)
	}

	percent := int64((hours*60.0 + minutes) / 1440.0 * 100.0)
	if percent > 99 {
		return "", fmt.Errorf("%v h %v m is a full day or more", hours, minutes)
	}
	return days + "." + strconv.FormatInt(percent, 10), nil
}

// ParseKeyValues reads "key = value" lines. Lines without '=' are ignored;
// only the first '=' splits, and both sides are trimmed.
func ParseKeyValues(text string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values
}

// FirstNumber returns the leading whitespace-separated token of text,
// checked to be a number: "-14.2 dBm (Rx Power)" gives "-14.2".
func FirstNumber(text string) (string, error) {
	token := firstToken(text)
	if _, err := parseFloat(token); err != nil {
		return "", fmt.Errorf("%q does not start with a number", strings.TrimSpace(text))
	}
	return token, nil
}

func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseFloatToken(line string) (float64, error) {
	token := firstToken(line)
	v, err := parseFloat(token)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", token)
	}
	return v, nil
}

// parseFloat rejects NaN and infinities, which ParseFloat accepts
func parseFloat(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", token)
	}
	return v, nil
}
