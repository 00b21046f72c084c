package counter

import "errors"

var (
	ErrStorageUnavailable = errors.New("counter storage unavailable")
	ErrCorruptRecord      = errors.New("counter record is corrupt")
	ErrCounterUnavailable = errors.New("visitor counter unavailable")
	ErrCountOverflow      = errors.New("count is at its maximum value")
)
