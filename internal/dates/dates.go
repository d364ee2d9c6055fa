package dates

import "time"

// layouts accepted for inbound date strings, tried in order.
var inboundLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

func parse(raw string) (time.Time, bool) {
	for _, layout := range inboundLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Canonical returns the YYYY-MM-DD form of an ISO timestamp, used to populate
// edit forms. Empty or invalid input yields "" rather than an error.
func Canonical(iso string) string {
	if iso == "" {
		return ""
	}
	t, ok := parse(iso)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// Display returns a long locale form such as "January 2, 2006" for read-only
// views. Empty or invalid input yields "".
func Display(iso string) string {
	if iso == "" {
		return ""
	}
	t, ok := parse(iso)
	if !ok {
		return ""
	}
	return t.Format("January 2, 2006")
}

// ToISO converts a user-entered date-only string into a full ISO instant at
// midnight UTC for submission. Empty input returns nil, which callers send as
// an explicit null to clear the field; that is distinct from omitting the
// field entirely.
func ToISO(dateOnly string) *string {
	if dateOnly == "" {
		return nil
	}
	t, ok := parse(dateOnly)
	if !ok {
		return nil
	}
	iso := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	return &iso
}
