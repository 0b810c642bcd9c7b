package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors; match with errors.Is against a returned *Error.
var (
	ErrBackendUnreachable = errors.New("backend unreachable")
	ErrMalformedCatalog   = errors.New("malformed catalog")
	ErrEmptyCatalog       = errors.New("no models found")
)

// Kind classifies catalog failures.
type Kind int

const (
	KindUnreachable Kind = iota + 1
	KindMalformed
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindMalformed:
		return "malformed"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Fetch. URL is the backend base URL.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return fmt.Sprintf("cannot reach model backend at %s: %v", e.URL, e.Err)
	case KindMalformed:
		return fmt.Sprintf("unexpected catalog response from %s: %v", e.URL, e.Err)
	case KindEmpty:
		return fmt.Sprintf("no models found at %s", e.URL)
	default:
		return fmt.Sprintf("catalog %s: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrBackendUnreachable:
		return e.Kind == KindUnreachable
	case ErrMalformedCatalog:
		return e.Kind == KindMalformed
	case ErrEmptyCatalog:
		return e.Kind == KindEmpty
	}
	return false
}
