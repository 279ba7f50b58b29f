package models

import (
	"errors"
	"testing"
)

func TestStorageErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "add_expense", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	var storageErr *StorageError
	if !errors.As(error(err), &storageErr) {
		t.Fatal("expected errors.As to match *StorageError")
	}
	if storageErr.Op != "add_expense" {
		t.Errorf("unexpected op: %q", storageErr.Op)
	}
}

func TestInitialStep(t *testing.T) {
	tests := []struct {
		flow FlowType
		want StepType
	}{
		{FlowExpenseEntry, StepExpenseCategory},
		{FlowSalaryEntry, StepSalaryAmount},
		{FlowDailyCheckin, StepDailyMood},
		{FlowNone, StepNone},
	}
	for _, tt := range tests {
		if got := InitialStep(tt.flow); got != tt.want {
			t.Errorf("InitialStep(%q) = %q, want %q", tt.flow, got, tt.want)
		}
	}
}

func TestConversationStateEmptyAndValid(t *testing.T) {
	var state ConversationState
	if !state.Empty() || !state.Valid() {
		t.Error("zero state should be empty and valid")
	}

	state = ConversationState{Flow: FlowExpenseEntry, Step: StepExpenseCategory}
	if state.Empty() {
		t.Error("active flow should not be empty")
	}
	if !state.Valid() {
		t.Error("expense category step should be valid")
	}

	state.Step = StepSalaryAmount
	if state.Valid() {
		t.Error("salary step under expense flow should be invalid")
	}
}
