package domain

import "time"

// DateTimeLayout is the textual date-time format used on the wire.
const DateTimeLayout = "2006-01-02 15:04:05"

// ParseDateTime parses s in DateTimeLayout, interpreting it in the local zone.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q, expected format %s", s, "yyyy-MM-dd HH:mm:ss")
	}
	return t, nil
}
