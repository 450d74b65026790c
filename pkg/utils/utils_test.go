package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// --- CategorizeError Tests ---

func TestCategorizeError_NilError(t *testing.T) {
	result := CategorizeError(nil)
	if result != "None" {
		t.Errorf("CategorizeError(nil) = %q, want %q", result, "None")
	}
}

func TestCategorizeError_SentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"RequestCreation", ErrRequestCreation, "Internal_RequestCreation"},
		{"ResponseBodyRead", ErrResponseBodyRead, "Network_BodyRead"},
		{"ResponseTooLarge", ErrResponseTooLarge, "Content_TooLarge"},
		{"ConfigValidation", ErrConfigValidation, "Config_Validation"},
		{"InvalidAuthentication", ErrInvalidAuthentication, "Config_Authentication"},
		{"InvalidAPIKeyLength", ErrInvalidAPIKeyLength, "Config_Authentication"},
		{"UnknownEndpoint", ErrUnknownEndpoint, "Config_Endpoint"},
		{"ServerHTTPError", ErrServerHTTPError, "HTTP_5xx"},
		{"OtherHTTPError", ErrOtherHTTPError, "HTTP_OtherStatus"},
		{"ClientHTTPError", ErrClientHTTPError, "HTTP_4xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CategorizeError(tt.err)
			if result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_ClientHTTPCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"404", fmt.Errorf("%w: status 404 Not Found", ErrClientHTTPError), "HTTP_404"},
		{"403", fmt.Errorf("%w: status 403 Forbidden", ErrClientHTTPError), "HTTP_403"},
		{"401", fmt.Errorf("%w: status 401 Unauthorized", ErrClientHTTPError), "HTTP_401"},
		{"429", fmt.Errorf("%w: status 429 Too Many Requests", ErrClientHTTPError), "HTTP_429"},
		{"410", fmt.Errorf("%w: status 410 Gone", ErrClientHTTPError), "HTTP_4xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CategorizeError(tt.err); result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_ParsingErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"URL", fmt.Errorf("%w: invalid URL", ErrParsing), "Content_ParsingURL"},
		{"XML", fmt.Errorf("%w: malformed XML", ErrParsing), "Content_ParsingXML"},
		{"Date", fmt.Errorf("%w: bad date", ErrParsing), "Content_ParsingDate"},
		{"Other", fmt.Errorf("%w: something", ErrParsing), "Content_ParsingOther"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CategorizeError(tt.err); result != tt.expected {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestCategorizeError_ContextErrors(t *testing.T) {
	if result := CategorizeError(fmt.Errorf("fetch: %w", context.Canceled)); result != "System_ContextCanceled" {
		t.Errorf("CategorizeError(canceled) = %q", result)
	}
	if result := CategorizeError(context.DeadlineExceeded); result != "System_ContextDeadlineExceeded" {
		t.Errorf("CategorizeError(deadline) = %q", result)
	}
}

func TestCategorizeError_NetworkStrings(t *testing.T) {
	tests := []struct {
		msg      string
		expected string
	}{
		{"dial tcp: connection refused", "Network_ConnectionRefused"},
		{"lookup foo: no such host", "Network_DNSLookup"},
		{"read: connection reset by peer", "Network_ConnectionReset"},
		{"x509: certificate signed by unknown authority", "Network_TLS"},
		{"i/o timeout", "Network_TimeoutGeneric"},
	}

	for _, tt := range tests {
		if result := CategorizeError(errors.New(tt.msg)); result != tt.expected {
			t.Errorf("CategorizeError(%q) = %q, want %q", tt.msg, result, tt.expected)
		}
	}
}

func TestCategorizeError_Unknown(t *testing.T) {
	if result := CategorizeError(errors.New("something odd")); result != "Unknown" {
		t.Errorf("CategorizeError(unknown) = %q, want %q", result, "Unknown")
	}
}

// --- CompileRegexPatterns Tests ---

func TestCompilePattern(t *testing.T) {
	re, err := CompilePattern(nil)
	if err != nil || re != nil {
		t.Errorf("CompilePattern(nil) = %v, %v; want nil, nil", re, err)
	}

	pattern := `(page1)|(section1)`
	re, err = CompilePattern(&pattern)
	if err != nil {
		t.Fatalf("CompilePattern() unexpected error: %v", err)
	}
	if !re.MatchString("https://example.com/section1/subpage2") {
		t.Error("CompilePattern() result should match section1")
	}

	bad := `(unclosed`
	if _, err := CompilePattern(&bad); !errors.Is(err, ErrConfigValidation) {
		t.Errorf("CompilePattern(bad) error = %v, want wrapped ErrConfigValidation", err)
	}
}

// --- WrapErrorf Tests ---

func TestWrapErrorf_NilError(t *testing.T) {
	result := WrapErrorf(nil, "some context")
	if result != nil {
		t.Errorf("WrapErrorf(nil, ...) = %v, want nil", result)
	}
}

func TestWrapErrorf_WrapsError(t *testing.T) {
	original := errors.New("original error")
	wrapped := WrapErrorf(original, "context %s", "value")

	if wrapped == nil {
		t.Fatal("WrapErrorf() returned nil, want error")
	}
	if !errors.Is(wrapped, original) {
		t.Error("WrapErrorf() result should wrap original error")
	}
	expectedMsg := "context value: original error"
	if wrapped.Error() != expectedMsg {
		t.Errorf("WrapErrorf() message = %q, want %q", wrapped.Error(), expectedMsg)
	}
}
