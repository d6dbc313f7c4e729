package fetch

import "fmt"

// Class categorizes fetch failures for logging and metrics.
type Class string

const (
	// ClassNetwork represents transport failures: DNS, connection
	// refused, timeouts.
	ClassNetwork Class = "network"

	// ClassClient represents 4xx responses.
	ClassClient Class = "client"

	// ClassServer represents 5xx responses.
	ClassServer Class = "server"
)

// FetchError is returned for any transport failure or non-2xx status.
// The fetch contract is all-or-nothing: no partial body is ever returned
// alongside an error.
type FetchError struct {
	URL        string
	StatusCode int
	Class      Class
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s error: GET %s: %v", e.Class, e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s error: GET %s: status %d", e.Class, e.URL, e.StatusCode)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a non-2xx HTTP status to an error class.
func classifyStatus(status int) Class {
	if status >= 500 {
		return ClassServer
	}
	return ClassClient
}
