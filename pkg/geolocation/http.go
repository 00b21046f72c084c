package geolocation

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

func checkStatus(response *http.Response) error {
	switch {
	case response.StatusCode >= http.StatusOK &&
		response.StatusCode < http.StatusMultipleChoices:
		return nil
	case response.StatusCode == http.StatusForbidden,
		response.StatusCode == http.StatusTooManyRequests:
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
	return toSingleLine(string(b))
}

func toSingleLine(s string) (line string) {
	line = strings.ReplaceAll(s, "\n", "")
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.ReplaceAll(line, "  ", " ")
	line = strings.ReplaceAll(line, "  ", " ")
	return line
}
