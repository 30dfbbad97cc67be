package matcher

import (
	"regexp"
	"strconv"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

var reminderTimePattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ParseTime returns the minute of day for a strict "HH:MM" value.
func ParseTime(value string) (int, bool) {
	m := reminderTimePattern.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}

// IsDue reports whether local falls in [reminderTime, reminderTime+windowMinutes).
// Malformed reminders are never due.
func IsDue(reminder domain.Reminder, local domain.LocalTime, windowMinutes int) bool {
	if !reminder.ReminderOn {
		return false
	}

	reminderMinute, ok := ParseTime(reminder.ReminderTime)
	if !ok {
		return false
	}

	days := ParseDays(reminder.ReminderDays)
	if len(days) > 0 {
		code, ok := CodeFor(local.Weekday)
		if !ok {
			return false
		}
		if _, ok := days[code]; !ok {
			return false
		}
	}

	lag := local.MinuteOfDay() - reminderMinute
	return lag >= 0 && lag < windowMinutes
}

type Matcher struct {
	windowMinutes int
}

func NewMatcher(windowMinutes int) *Matcher {
	return &Matcher{windowMinutes: windowMinutes}
}

func (m *Matcher) WindowMinutes() int {
	return m.windowMinutes
}

// DueReminders keeps the due reminders in their configured order.
func (m *Matcher) DueReminders(reminders []domain.Reminder, local domain.LocalTime) []domain.Reminder {
	due := make([]domain.Reminder, 0)
	for _, r := range reminders {
		if IsDue(r, local, m.windowMinutes) {
			due = append(due, r)
		}
	}
	return due
}
