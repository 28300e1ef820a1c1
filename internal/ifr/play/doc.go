// Package play runs one play-through over a static scenario.
//
// A Session mirrors every entity of a scenario.Scenario with a mutable
// state object: VariableState, ConditionState, EventState, EventGroupState,
// TaskState and StageState. States are built in two phases. The first
// allocates one state per static entity into identity-keyed indices; the
// second wires dependencies and progressions through those indices, so
// every state reads the live values of the same session.
//
// Play calls made in the wrong state (rolling an unavailable event,
// completing an unrolled one) return coded precondition errors. Sessions
// are not safe for concurrent use.
package play
