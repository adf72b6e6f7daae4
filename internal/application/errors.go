package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound             = errors.New("not found")
	ErrNoSelection          = errors.New("no selection")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrFetch                = errors.New("fetch failed")
)

// FetchError reports which ingestion step failed
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
