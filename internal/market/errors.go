package market

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes bad input from upstream failures.
type ErrorKind int

const (
	// KindUnknownCommodity means the requested commodity is not configured.
	KindUnknownCommodity ErrorKind = iota + 1
	// KindUpstreamFetch means the price or exchange-rate query failed.
	KindUpstreamFetch
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnknownCommodity:
		return "unknown_commodity"
	case KindUpstreamFetch:
		return "upstream_fetch_failure"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by errors.Is against a *FetchError.
var (
	ErrUnknownCommodity = errors.New("unknown commodity")
	ErrUpstreamFetch    = errors.New("upstream fetch failed")
)

// FallbackFetchedAt is the display timestamp used when no snapshot exists.
const FallbackFetchedAt = "N/A (API Error)"

// FetchError is the single failure outcome of FetchSnapshot.
type FetchError struct {
	Kind      ErrorKind
	Commodity string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Commodity, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *FetchError) Is(target error) bool {
	switch e.Kind {
	case KindUnknownCommodity:
		return target == ErrUnknownCommodity
	case KindUpstreamFetch:
		return target == ErrUpstreamFetch
	}
	return false
}

// KindOf returns the kind of a FetchSnapshot error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// FailureMessage is the human-readable warning shown when a fetch fails.
func FailureMessage(commodity string, err error) string {
	cause := err
	var fe *FetchError
	if errors.As(err, &fe) {
		cause = fe.Err
	}
	return fmt.Sprintf("Failed to fetch real-time data for %s: %v. Displaying fallback data.", commodity, cause)
}
