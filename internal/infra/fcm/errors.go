package fcm

import (
	"strings"

	"firebase.google.com/go/v4/messaging"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// errorClassifiers is evaluated in order; the first match wins.
var errorClassifiers = []struct {
	match func(error) bool
	code  string
}{
	{messaging.IsUnregistered, domain.PushErrorRegistrationTokenNotRegistered},
	{isInvalidToken, domain.PushErrorInvalidRegistrationToken},
	{messaging.IsInvalidArgument, domain.PushErrorInvalidArgument},
	{messaging.IsQuotaExceeded, domain.PushErrorMessageRateExceeded},
	{messaging.IsUnavailable, domain.PushErrorServerUnavailable},
	{messaging.IsInternal, domain.PushErrorInternal},
	{messaging.IsSenderIDMismatch, domain.PushErrorMismatchedCredential},
	{messaging.IsThirdPartyAuthError, domain.PushErrorInvalidAPNSCredentials},
}

// FCM reports malformed tokens as INVALID_ARGUMENT; only the message tells
// them apart from payload errors.
func isInvalidToken(err error) bool {
	if !messaging.IsInvalidArgument(err) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "registration token")
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range errorClassifiers {
		if c.match(err) {
			return c.code
		}
	}
	return domain.PushErrorUnknown
}
