package geolocation

import "errors"

var (
	ErrUpstream        = errors.New("upstream returned an error")
	ErrTooManyRequests = errors.New("too many requests sent")
	ErrServerSide      = errors.New("server side error")
	ErrBadHTTPStatus   = errors.New("bad HTTP status received")
)
