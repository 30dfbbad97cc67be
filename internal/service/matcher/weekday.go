package matcher

import "strings"

// RecurrenceCode is the two-letter weekday code used in reminder filters.
type RecurrenceCode string

const (
	Sunday    RecurrenceCode = "SU"
	Monday    RecurrenceCode = "MO"
	Tuesday   RecurrenceCode = "TU"
	Wednesday RecurrenceCode = "WE"
	Thursday  RecurrenceCode = "TH"
	Friday    RecurrenceCode = "FR"
	Saturday  RecurrenceCode = "SA"
)

var weekdayCodes = [7]struct {
	abbrev string
	code   RecurrenceCode
}{
	{"Sun", Sunday},
	{"Mon", Monday},
	{"Tue", Tuesday},
	{"Wed", Wednesday},
	{"Thu", Thursday},
	{"Fri", Friday},
	{"Sat", Saturday},
}

// CodeFor maps a short weekday name to its recurrence code.
func CodeFor(abbrev string) (RecurrenceCode, bool) {
	for _, w := range weekdayCodes {
		if w.abbrev == abbrev {
			return w.code, true
		}
	}
	return "", false
}

// ParseDays parses a comma-separated weekday list. Unrecognized entries are
// dropped; an empty result means every day.
func ParseDays(days string) map[RecurrenceCode]struct{} {
	set := make(map[RecurrenceCode]struct{})
	for _, part := range strings.Split(days, ",") {
		if code, ok := CodeFor(strings.TrimSpace(part)); ok {
			set[code] = struct{}{}
		}
	}
	return set
}
