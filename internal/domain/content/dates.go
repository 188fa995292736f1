package content

import (
	"fmt"
	"strings"
	"time"
)

// Accepted date layouts, as produced by month and date form inputs
var dateLayouts = []string{"2006-01-02", "2006-01", time.RFC3339}

// ParseDate parses YYYY-MM-DD, YYYY-MM or RFC 3339
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatMonthYear renders a stored date as "January 2006". Unparseable
// input is returned as-is; empty input renders empty.
func FormatMonthYear(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("January 2006")
}

// Duration renders the time between start and the end of tenure as
// "N years M months". Ongoing tenure runs until now. It returns "" when
// start or the end date is missing or unparseable.
func Duration(start string, tenure Tenure, now time.Time) string {
	from, err := ParseDate(start)
	if err != nil {
		return ""
	}

	var to time.Time
	switch t := tenure.(type) {
	case Ongoing:
		to = now
	case Completed:
		to, err = ParseDate(t.EndDate)
		if err != nil {
			return ""
		}
	default:
		return ""
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months <= 0 {
		return "Less than a month"
	}

	var parts []string
	if years := months / 12; years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if rest := months % 12; rest > 0 {
		parts = append(parts, plural(rest, "month"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
