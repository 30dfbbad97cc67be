package docstore

import (
	"strconv"
	"strings"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// decodeProfile maps a profile document. Malformed reminder entries decode to
// zero values so the matcher treats them as not due.
func decodeProfile(userID string, data map[string]interface{}) *domain.Profile {
	profile := &domain.Profile{
		UserID:   userID,
		TimeZone: stringField(data, profileFieldTimeZone),
	}
	if profile.TimeZone == "" {
		profile.TimeZone = domain.DefaultTimeZone
	}

	quests, _ := data[profileFieldQuests].([]interface{})
	profile.Reminders = make([]domain.Reminder, 0, len(quests))
	for _, q := range quests {
		fields, ok := q.(map[string]interface{})
		if !ok {
			continue
		}
		profile.Reminders = append(profile.Reminders, decodeReminder(fields))
	}

	return profile
}

func decodeReminder(data map[string]interface{}) domain.Reminder {
	on, _ := data[reminderFieldOn].(bool)

	return domain.Reminder{
		Title:        coercedField(data, reminderFieldTitle),
		ReminderOn:   on,
		ReminderTime: stringField(data, reminderFieldTime),
		ReminderDays: decodeDays(data[reminderFieldDays]),
	}
}

// decodeDays accepts the comma-separated form and an array of abbreviations.
func decodeDays(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func decodeDevice(id string, data map[string]interface{}) domain.Device {
	enabled, _ := data[deviceFieldPushEnabled].(bool)

	return domain.Device{
		ID:          id,
		Token:       coercedField(data, deviceFieldToken),
		Platform:    stringField(data, deviceFieldPlatform),
		PushEnabled: enabled,
	}
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

// coercedField renders scalar values as text. Missing, false and zero values
// decode as empty.
func coercedField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
	case int64:
		if v != 0 {
			return strconv.FormatInt(v, 10)
		}
	case float64:
		if v != 0 {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
