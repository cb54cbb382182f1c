package apperrors

import "errors"

var (
	// ErrTranslationTimeout means the LLM call exceeded its deadline.
	// Surfaced to users as "translation timed out", never as a crash.
	ErrTranslationTimeout = errors.New("translation timed out")

	// ErrTranslationFailed means the LLM call failed or its response
	// could not be parsed as a query configuration.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrStoreUnavailable means the schedule store rejected or failed
	// the query. Detail is logged server-side; users see a generic
	// data-unavailable message.
	ErrStoreUnavailable = errors.New("schedule store unavailable")
)
