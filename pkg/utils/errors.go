package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrClientHTTPError       = errors.New("client HTTP error (4xx)")    // Wraps original error/status
	ErrServerHTTPError       = errors.New("server HTTP error (5xx)")    // Wraps original error/status
	ErrOtherHTTPError        = errors.New("other HTTP error (non-2xx)") // Wraps original error/status
	ErrParsing               = errors.New("parsing error")              // Wraps specific parsing error (URL, XML, date)
	ErrRequestCreation       = errors.New("failed to create HTTP request")
	ErrResponseBodyRead      = errors.New("failed to read response body")
	ErrResponseTooLarge      = errors.New("response body exceeds size limit")
	ErrConfigValidation      = errors.New("configuration validation error")
	ErrInvalidAuthentication = errors.New("invalid IndexNow authentication")
	ErrInvalidAPIKeyLength   = errors.New("API key length must be between 8 and 128")
	ErrUnknownEndpoint       = errors.New("unknown search engine endpoint")
)

// WrapErrorf annotates err with a formatted message, keeping it matchable with errors.Is
// Returns nil when err is nil
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// CategorizeError maps an error to a predefined category string for logging.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrClientHTTPError):
		errMsg := err.Error()
		if strings.Contains(errMsg, " 404 ") {
			return "HTTP_404"
		}
		if strings.Contains(errMsg, " 403 ") {
			return "HTTP_403"
		}
		if strings.Contains(errMsg, " 401 ") {
			return "HTTP_401"
		}
		if strings.Contains(errMsg, " 429 ") {
			return "HTTP_429"
		}
		return "HTTP_4xx"
	case errors.Is(err, ErrServerHTTPError):
		return "HTTP_5xx"
	case errors.Is(err, ErrOtherHTTPError):
		return "HTTP_OtherStatus"
	case errors.Is(err, ErrParsing):
		errMsg := err.Error()
		if strings.Contains(errMsg, "URL") {
			return "Content_ParsingURL"
		}
		if strings.Contains(errMsg, "XML") {
			return "Content_ParsingXML"
		}
		if strings.Contains(errMsg, "date") {
			return "Content_ParsingDate"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrRequestCreation):
		return "Internal_RequestCreation"
	case errors.Is(err, ErrResponseBodyRead):
		return "Network_BodyRead"
	case errors.Is(err, ErrResponseTooLarge):
		return "Content_TooLarge"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	case errors.Is(err, ErrInvalidAuthentication), errors.Is(err, ErrInvalidAPIKeyLength):
		return "Config_Authentication"
	case errors.Is(err, ErrUnknownEndpoint):
		return "Config_Endpoint"
	}

	// --- Fallback checks for common underlying error types/strings ---

	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Network_Timeout"
	}

	lowerErrMsg := strings.ToLower(err.Error())
	if strings.Contains(lowerErrMsg, "timeout") {
		return "Network_TimeoutGeneric"
	}
	if strings.Contains(lowerErrMsg, "connection refused") {
		return "Network_ConnectionRefused"
	}
	if strings.Contains(lowerErrMsg, "no such host") {
		return "Network_DNSLookup"
	}
	if strings.Contains(lowerErrMsg, "tls") || strings.Contains(lowerErrMsg, "certificate") {
		return "Network_TLS"
	}
	if strings.Contains(lowerErrMsg, "reset by peer") {
		return "Network_ConnectionReset"
	}

	return "Unknown"
}
