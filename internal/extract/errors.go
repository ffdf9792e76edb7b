package extract

import "errors"

var (
	// ErrFetchUnavailable marks a period whose page could not be retrieved
	ErrFetchUnavailable = errors.New("period unavailable")
	// ErrMalformedDocument marks a period whose page has no table to parse
	ErrMalformedDocument = errors.New("malformed document")
	// ErrNoDataExtracted is returned when no requested period yielded a record
	ErrNoDataExtracted = errors.New("no data extracted")
	// ErrSinkWrite marks a failure to persist records
	ErrSinkWrite = errors.New("sink write failed")
)
