// Package scenario defines the static rule graph of an IFR scenario.
//
// A Scenario is built once through the construction API and never changes
// after a session is started from it:
//
//   - Variable: a named, typed slot of session data with optional bounds.
//   - Condition / ConditionGroup: read-only predicates over Variable values.
//   - Outcome: a typed mutation of one Variable.
//   - Task: narrative text plus the pass and fail Effects.
//   - Event: a dice range to Task mapping gated by Dependencies.
//   - EventGroup: Events sharing a gate and a completion rule.
//   - Stage: ordered event spaces plus an ordered progression table.
//
// Builder calls return nil on success. A non-nil error is an *errors.Error
// whose code identifies the validation that failed; the receiver is left
// unchanged. Runtime state lives in package play.
package scenario
