package docstore

import "errors"

var ErrInvalidDedupState = errors.New("invalid dedup state")
