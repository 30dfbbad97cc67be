package repository

import "errors"

var (
	ErrInvalidClaim      = errors.New("invalid slot claim")
	ErrInvalidDedupState = errors.New("invalid dedup state")
)
