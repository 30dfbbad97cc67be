package domain

// Device is a push registration owned by a user.
type Device struct {
	ID          string
	Token       string
	Platform    string
	PushEnabled bool
}

func (d Device) CanReceivePush() bool {
	return d.PushEnabled && d.Token != ""
}

func DeviceTokens(devices []Device) []string {
	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}
	return tokens
}
