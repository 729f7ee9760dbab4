package client

import (
	"fmt"
	"regexp"
	"strconv"
)

// APIError is a failed HTTP call as seen by callers. It is built per call and
// never persisted.
type APIError struct {
	// Message is the server's message/error field when the body carried one,
	// else the transport-level message.
	Message string
	// Status is the HTTP status code, 0 when the request never got a
	// response.
	Status int
	// Code classifies transport failures: "timeout", "network", or empty.
	Code string
	// RequestID is the server's tracing id when one was returned.
	RequestID string
}

// Error renders the formatted-string contract some callers parse the status
// back out of: "HTTP <status>: <message>" when a status is known, else the
// raw message. Keep the format stable.
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return e.Message
}

var httpStatusPattern = regexp.MustCompile(`(?i)HTTP\s+(\d{3})`)

// ParseHTTPStatus re-extracts the status code from a formatted error string.
// This is the degraded path for call sites that only ever see error text;
// prefer APIError.Status where the typed error is available. Returns 0 when
// no status is embedded.
func ParseHTTPStatus(msg string) int {
	m := httpStatusPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return code
}
