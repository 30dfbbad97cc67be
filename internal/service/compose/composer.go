package compose

import (
	"strings"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/config"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

const (
	maxListedTitles = 3
	fallbackTitle   = "your task"
)

const (
	DataKeyType    = "type"
	DataKeySlotKey = "slotKey"
	DataKeyBody    = "body"
	DataKeyScreen  = "screen"
)

// ComposeBody builds the notification body from due reminder titles.
func ComposeBody(titles []string) string {
	cleaned := make([]string, 0, len(titles))
	for _, title := range titles {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	switch len(cleaned) {
	case 0:
		return "Time for: " + fallbackTitle
	case 1:
		return "Time for: " + cleaned[0]
	}

	listed := cleaned
	if len(listed) > maxListedTitles {
		listed = listed[:maxListedTitles]
	}

	body := "Due now: " + strings.Join(listed, ", ")
	if len(cleaned) > maxListedTitles {
		body += "..."
	}
	return body
}

type Composer struct {
	cfg *config.PushConfig
}

func NewComposer(cfg *config.PushConfig) *Composer {
	return &Composer{cfg: cfg}
}

// Tag groups notifications for the same slot on the client.
func (c *Composer) Tag(slotKey string) string {
	return c.cfg.TagPrefix + slotKey
}

func (c *Composer) Compose(due []domain.Reminder, slotKey string) domain.PushNotification {
	titles := make([]string, 0, len(due))
	for _, r := range due {
		titles = append(titles, r.Title)
	}
	body := ComposeBody(titles)

	return domain.PushNotification{
		Title: c.cfg.Title,
		Body:  body,
		Tag:   c.Tag(slotKey),
		Data: map[string]string{
			DataKeyType:    c.cfg.Type,
			DataKeySlotKey: slotKey,
			DataKeyBody:    body,
			DataKeyScreen:  c.cfg.Screen,
		},
		WebPush: domain.WebPushOptions{
			Urgency:  c.cfg.Urgency,
			Icon:     c.cfg.Icon,
			Badge:    c.cfg.Badge,
			Link:     c.cfg.Link,
			Renotify: true,
		},
	}
}
