package indexnow

import (
	"fmt"
	"net/http"
)

// SuccessStatusCodes maps the status codes IndexNow answers a successful submission with to their reason phrase
var SuccessStatusCodes = map[int]string{
	http.StatusOK:        "OK",
	http.StatusAccepted:  "Accepted",
	http.StatusNoContent: "No Content",
}

// failureReasons explains the documented IndexNow failure responses
var failureReasons = map[int]string{
	http.StatusBadRequest:          "Bad request: invalid format",
	http.StatusForbidden:           "Forbidden: key not valid, e.g. key not found or file found but key not in the file",
	http.StatusUnprocessableEntity: "Unprocessable Entity: URLs do not belong to the host or the key does not match the schema",
	http.StatusTooManyRequests:     "Too Many Requests: potential spam",
}

// IsSuccess returns true if code is one of SuccessStatusCodes
func IsSuccess(code int) bool {
	_, ok := SuccessStatusCodes[code]
	return ok
}

// DescribeStatus renders a status code with its meaning, e.g. "202 Accepted"
func DescribeStatus(code int) string {
	if text, ok := SuccessStatusCodes[code]; ok {
		return fmt.Sprintf("%d %s", code, text)
	}
	if text, ok := failureReasons[code]; ok {
		return fmt.Sprintf("%d %s", code, text)
	}
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}
