package utils

import (
	"regexp"
)

// CompilePattern compiles a single optional pattern; nil in, nil out
func CompilePattern(pattern *string) (*regexp.Regexp, error) {
	if pattern == nil {
		return nil, nil
	}
	re, err := regexp.Compile(*pattern)
	if err != nil {
		return nil, WrapErrorf(ErrConfigValidation, "invalid regex pattern '%s': %v", *pattern, err)
	}
	return re, nil
}
