package remote

import (
	"errors"
	"fmt"
)

// Failure kinds of a remote fetch. Match with errors.Is.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrTransport        = errors.New("transport failure")
	ErrDecoding         = errors.New("decoding failure")
	ErrMalformedDataset = errors.New("malformed dataset")
)

// FetchError reports a failed fetch of URL. Kind is one of the sentinel
// errors above; Err is the underlying cause.
type FetchError struct {
	Kind error
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{e.Kind, e.Err} }

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
