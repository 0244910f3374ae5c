package cdx

import "errors"

// Fetch error kinds.
// Fetching has exactly three ways to fail, and callers branch on them with
// errors.Is rather than inspecting error strings. The set is closed: any
// lower-level failure is wrapped into one of these.
var (
	// ErrTransport is returned when the request could not be completed:
	// connection failure, timeout, or a non-2xx response status.
	ErrTransport = errors.New("cdx transport error")

	// ErrDecode is returned when the response body is not the expected
	// JSON array-of-rows shape. Malformed responses yield no partial
	// results; the whole fetch fails.
	ErrDecode = errors.New("cdx decode error")

	// ErrEmptyResult is returned when the index has no captures for the
	// domain (empty body or a header-only row set).
	ErrEmptyResult = errors.New("no archived URLs found")
)
