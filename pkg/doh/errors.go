package doh

import "errors"

var (
	ErrNoAnswer        = errors.New("no answer found")
	ErrResponseCode    = errors.New("DNS response code is not success")
	ErrIPMalformed     = errors.New("IP address malformed")
	ErrServerSide      = errors.New("server side error")
	ErrBadHTTPStatus   = errors.New("bad HTTP status received")
	ErrTooManyRequests = errors.New("too many requests sent")
)
