package doh

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

func checkStatus(response *http.Response) error {
	switch {
	case response.StatusCode == http.StatusOK:
		return nil
	case response.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w (%s)", ErrTooManyRequests,
			bodyToSingleLine(response.Body))
	case response.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d %s (%s)", ErrServerSide,
			response.StatusCode, http.StatusText(response.StatusCode),
			bodyToSingleLine(response.Body))
	default:
		return fmt.Errorf("%w: %d %s (%s)", ErrBadHTTPStatus,
			response.StatusCode, http.StatusText(response.StatusCode),
			bodyToSingleLine(response.Body))
	}
}

func bodyToSingleLine(body io.Reader) (s string) {
	b, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	s = strings.ReplaceAll(string(b), "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
