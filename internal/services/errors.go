package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetwork    = errors.New("network failure")
	ErrParse      = errors.New("parse failure")
	ErrCancelled  = errors.New("cancelled")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Cancelled tags err as a cancellation. Context errors are kept in the chain
// so callers can still match context.Canceled or context.DeadlineExceeded.
func Cancelled(component, operation string, err error) error {
	return Wrap(ErrCancelled, component, operation, "", err)
}

// IsCancelled reports whether err represents an aborted request. Errors
// already tagged as network or parse failures are not cancellations even when
// they wrap a context error (an HTTP client timeout does).
func IsCancelled(err error) bool {
	if errors.Is(err, ErrCancelled) {
		return true
	}
	if errors.Is(err, ErrNetwork) || errors.Is(err, ErrParse) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Classify maps an error onto the sentinel that describes it. Context errors
// classify as ErrCancelled; unknown errors classify as ErrNetwork.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsCancelled(err):
		return ErrCancelled
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrParse):
		return ErrParse
	case errors.Is(err, ErrValidation):
		return ErrValidation
	default:
		return ErrNetwork
	}
}

// ValidateTitle rejects blank titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return Wrap(ErrValidation, "engine", "validate", "title must not be empty", nil)
	}
	return nil
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
