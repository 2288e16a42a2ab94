package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"coverfinder/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrNetwork, "gamedb", "fetch bucket", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"gamedb", "fetch bucket", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestCancelledKeepsContextError(t *testing.T) {
	err := services.Cancelled("steamstore", "search", context.Canceled)
	if !errors.Is(err, services.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"context canceled", fmt.Errorf("do: %w", context.Canceled), services.ErrCancelled},
		{"deadline", context.DeadlineExceeded, services.ErrCancelled},
		{"not found", services.Wrap(services.ErrNotFound, "gamedb", "fetch", "404", nil), services.ErrNotFound},
		{"parse", services.Wrap(services.ErrParse, "gamedb", "decode", "", errors.New("eof")), services.ErrParse},
		{"validation", services.ValidateTitle(" "), services.ErrValidation},
		{"unknown", errors.New("dial tcp: refused"), services.ErrNetwork},
		{"client timeout", services.Wrap(services.ErrNetwork, "steamstore", "search", "timeout", context.DeadlineExceeded), services.ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Classify(tt.err); got != tt.want {
				t.Fatalf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidateTitleAcceptsText(t *testing.T) {
	if err := services.ValidateTitle("半条命"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
