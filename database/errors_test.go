package database

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapDBError(t *testing.T) {
	underlying := errors.New("connection reset")
	err := WrapDBError("ExpenseBreakdown", underlying)

	if err == nil {
		t.Fatal("Expected wrapped error")
	}
	if got := err.Error(); got != "database error in ExpenseBreakdown: connection reset" {
		t.Errorf("Unexpected message: %q", got)
	}
	if !errors.Is(err, underlying) {
		t.Error("Expected wrapped error to unwrap to the underlying error")
	}

	var dbErr *DBError
	if !errors.As(err, &dbErr) {
		t.Fatal("Expected *DBError")
	}
	if dbErr.Operation != "ExpenseBreakdown" {
		t.Errorf("Unexpected operation: %q", dbErr.Operation)
	}
}

func TestWrapDBErrorNil(t *testing.T) {
	if err := WrapDBError("Get", nil); err != nil {
		t.Errorf("Expected nil for nil underlying error, got %v", err)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundErrorWithID("financial metrics", "biz-1")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatal("Expected *NotFoundError")
	}
	if got := err.Error(); got != "financial metrics not found: biz-1" {
		t.Errorf("Unexpected message: %q", got)
	}

	// Still detectable through a wrapping layer, as the API handlers do.
	wrapped := fmt.Errorf("Get: %w", err)
	if !errors.As(wrapped, &notFound) {
		t.Error("Expected NotFoundError to survive wrapping")
	}
}
