package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	id := NewRunID()
	parsed, err := ParseRunID(id.String())
	if err != nil {
		t.Fatalf("Expected generated run ID to parse, got %v", err)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	if _, err := ParseRunID("   "); err == nil {
		t.Error("Expected error for blank run ID")
	}
	if _, err := ParseRunID("not-a-uuid"); err == nil {
		t.Error("Expected error for malformed run ID")
	}
}

// TestErrorClassification tests sentinel wrapping
func TestErrorClassification(t *testing.T) {
	if !IsPreconditionError(NewInsufficientDataError(2, 1)) {
		t.Error("Expected insufficient data to be a precondition error")
	}
	if !IsPreconditionError(NewIncompatibleTypesError("Motif", "Sequence")) {
		t.Error("Expected type mismatch to be a precondition error")
	}
	if !IsPreconditionError(ErrInvalidBinWidth) {
		t.Error("Expected invalid bin width to be a precondition error")
	}
	if !IsNotFoundError(NewNotFoundError("collection", "x")) {
		t.Error("Expected not found error")
	}
	if IsCancelled(ErrInsufficientData) {
		t.Error("Insufficient data is not a cancellation")
	}
	if !IsCancelled(NewCancelledError(nil)) {
		t.Error("Expected cancellation without cause")
	}
}
