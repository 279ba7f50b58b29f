// Package models defines the closed inbound event variant for PobutBot.
package models

// Event is an inbound event the conversation engine dispatches on. The
// variant is closed: only UserText, UserAction, and SchedulerStart implement
// it, so an unhandled (flow, step, event) combination is a test-time gap
// rather than a silent no-op.
type Event interface {
	isEvent()
}

// UserText is a free-form text reply from the user.
type UserText struct {
	Text string
}

// UserAction is a discrete inline-button press with a structured payload
// (one of the Action* constants).
type UserAction struct {
	ActionID string
}

// SchedulerStart is a synthetic event requesting a flow be (re)initiated
// regardless of current state. It is produced by the scheduler bridge, never
// by the transport.
type SchedulerStart struct {
	Flow FlowType
}

func (UserText) isEvent()       {}
func (UserAction) isEvent()     {}
func (SchedulerStart) isEvent() {}
