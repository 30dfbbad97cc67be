package config

import "os"

const (
	defaultPushTitle     = "Hunter Quest Reminder"
	defaultPushIcon      = "/assets/icons/icon-192.png"
	defaultPushBadge     = "/assets/icons/icon-192.png"
	defaultPushLink      = "/index.html#quests"
	defaultPushScreen    = "quests"
	defaultPushType      = "quest_reminder"
	defaultPushTagPrefix = "quest-"
	defaultPushUrgency   = "high"
)

// PushConfig holds the static parts of every reminder notification.
type PushConfig struct {
	Title     string
	Icon      string
	Badge     string
	Link      string
	Screen    string
	Type      string
	TagPrefix string
	Urgency   string
}

func LoadPushConfig() *PushConfig {
	return &PushConfig{
		Title:     getEnvOrDefault("PUSH_TITLE", defaultPushTitle),
		Icon:      getEnvOrDefault("PUSH_ICON", defaultPushIcon),
		Badge:     getEnvOrDefault("PUSH_BADGE", defaultPushBadge),
		Link:      getEnvOrDefault("PUSH_LINK", defaultPushLink),
		Screen:    getEnvOrDefault("PUSH_SCREEN", defaultPushScreen),
		Type:      getEnvOrDefault("PUSH_TYPE", defaultPushType),
		TagPrefix: getEnvOrDefault("PUSH_TAG_PREFIX", defaultPushTagPrefix),
		Urgency:   getEnvOrDefault("PUSH_URGENCY", defaultPushUrgency),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
