// Package models defines conversation state structures for PobutBot flows.
package models

import "time"

// FlowType names a multi-step data-entry conversation.
type FlowType string

// StepType names the point within a flow awaiting a specific kind of input.
type StepType string

// DataKey is a key for partially collected scratch data.
type DataKey string

// Flow type constants.
const (
	FlowNone         FlowType = ""
	FlowExpenseEntry FlowType = "expense_entry"
	FlowSalaryEntry  FlowType = "salary_entry"
	FlowDailyCheckin FlowType = "daily_checkin"
)

// Step constants. Each step belongs to exactly one flow.
const (
	StepNone            StepType = ""
	StepExpenseCategory StepType = "EXPENSE_CATEGORY"
	StepExpenseAmount   StepType = "EXPENSE_AMOUNT"
	StepSalaryAmount    StepType = "SALARY_AMOUNT"
	StepDailyMood       StepType = "DAILY_MOOD"
	StepDailyMileage    StepType = "DAILY_MILEAGE"
)

// Data key constants for scratch data.
const (
	DataKeyCategory DataKey = "category"
)

// ValidStep reports whether step is a legal step for flow.
func ValidStep(flow FlowType, step StepType) bool {
	switch flow {
	case FlowNone:
		return step == StepNone
	case FlowExpenseEntry:
		return step == StepExpenseCategory || step == StepExpenseAmount
	case FlowSalaryEntry:
		return step == StepSalaryAmount
	case FlowDailyCheckin:
		return step == StepDailyMood || step == StepDailyMileage
	default:
		return false
	}
}

// InitialStep returns the first step of a flow.
func InitialStep(flow FlowType) StepType {
	switch flow {
	case FlowExpenseEntry:
		return StepExpenseCategory
	case FlowSalaryEntry:
		return StepSalaryAmount
	case FlowDailyCheckin:
		return StepDailyMood
	default:
		return StepNone
	}
}

// ConversationState is the single live multi-step flow of the admin user.
// Flow == FlowNone implies Step and Scratch are empty.
type ConversationState struct {
	Flow      FlowType           `json:"flow"`
	Step      StepType           `json:"step"`
	Scratch   map[DataKey]string `json:"scratch,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Empty reports whether no flow is in progress.
func (s ConversationState) Empty() bool {
	return s.Flow == FlowNone
}

// Valid reports whether the state satisfies the flow/step invariant.
func (s ConversationState) Valid() bool {
	if s.Flow == FlowNone {
		return s.Step == StepNone && len(s.Scratch) == 0
	}
	return ValidStep(s.Flow, s.Step)
}
