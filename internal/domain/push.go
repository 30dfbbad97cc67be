package domain

// Gateway error codes. The two "permanently invalid" codes mean the token no
// longer resolves to a live device; every other code is retryable.
const (
	PushErrorRegistrationTokenNotRegistered = "registration-token-not-registered"
	PushErrorInvalidRegistrationToken       = "invalid-registration-token"
	PushErrorInvalidArgument                = "invalid-argument"
	PushErrorInternal                       = "internal-error"
	PushErrorMessageRateExceeded            = "message-rate-exceeded"
	PushErrorServerUnavailable              = "server-unavailable"
	PushErrorMismatchedCredential           = "mismatched-credential"
	PushErrorInvalidAPNSCredentials         = "invalid-apns-credentials"
	PushErrorUnknown                        = "unknown-error"
	PushErrorGateway                        = "gateway-error"
)

// MaxMulticastTokens is the largest token list one multicast request accepts.
const MaxMulticastTokens = 500

func IsPermanentlyInvalid(code string) bool {
	switch code {
	case PushErrorRegistrationTokenNotRegistered, PushErrorInvalidRegistrationToken:
		return true
	default:
		return false
	}
}

type WebPushOptions struct {
	Urgency  string
	Icon     string
	Badge    string
	Link     string
	Renotify bool
}

type PushNotification struct {
	Title   string
	Body    string
	Tag     string
	Data    map[string]string
	WebPush WebPushOptions
}

type PushMessage struct {
	Tokens       []string
	Notification PushNotification
}

type SendResult struct {
	Success   bool
	MessageID string
	ErrorCode string
}

// BatchResult carries one SendResult per token, in request order.
type BatchResult struct {
	Responses    []SendResult
	SuccessCount int
	FailureCount int
}
