package util

import (
	"strconv"
	"strings"
)

// ParsePositiveInt falls back to def for anything that is not an integer >= 1.
func ParsePositiveInt(val string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ParseId rejects empty or oversized path ids before they reach a query.
func ParseId(val string) (string, *HTTPError) {
	val = strings.TrimSpace(val)
	if val == "" || len(val) > 128 {
		httpErr := MalformedIdHTTPErr
		return "", &httpErr
	}
	return val, nil
}
