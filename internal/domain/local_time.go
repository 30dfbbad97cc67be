package domain

// LocalTime holds the civil calendar fields of an instant in a user's zone.
// Weekday is the short English name (Sun..Sat).
type LocalTime struct {
	Year     int
	Month    int
	Day      int
	Hour     int
	Minute   int
	Weekday  string
	TimeZone string
}

func (l LocalTime) MinuteOfDay() int {
	return l.Hour*60 + l.Minute
}
