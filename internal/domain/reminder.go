package domain

// Reminder is one recurring reminder configured on a user's quest profile.
// ReminderDays holds comma-separated weekday abbreviations ("Mon,Wed"); empty
// means every day.
type Reminder struct {
	Title        string
	ReminderOn   bool
	ReminderTime string
	ReminderDays string
}

type Profile struct {
	UserID    string
	TimeZone  string
	Reminders []Reminder
}

const DefaultTimeZone = "UTC"
