package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("reminder profile not found")
	ErrUserEnumeration      = errors.New("failed to enumerate users")
	ErrPushResponseMismatch = errors.New("push response count does not match token count")
	ErrRunAbandoned         = errors.New("run deadline reached before user was processed")
)
