// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Variable errors
	CodeVariableNameInvalid       Code = "VARIABLE_NAME_INVALID"
	CodeVariableTypeInvalid       Code = "VARIABLE_TYPE_INVALID"
	CodeVariableTypeMismatch      Code = "VARIABLE_TYPE_MISMATCH"
	CodeVariableDuplicate         Code = "VARIABLE_DUPLICATE"
	CodeVariableBoundsInvalid     Code = "VARIABLE_BOUNDS_INVALID"
	CodeVariableBoundsAlreadySet  Code = "VARIABLE_BOUNDS_ALREADY_SET"
	CodeVariableValueOutOfBounds  Code = "VARIABLE_VALUE_OUT_OF_BOUNDS"
	CodeVariableUnregistered      Code = "VARIABLE_UNREGISTERED"
	CodeConditionOperationInvalid Code = "CONDITION_OPERATION_INVALID"
	CodeConditionTargetInvalid    Code = "CONDITION_TARGET_INVALID"
	CodeOutcomeOperationInvalid   Code = "OUTCOME_OPERATION_INVALID"
	CodeOutcomeTargetInvalid      Code = "OUTCOME_TARGET_INVALID"

	// Event errors
	CodeEventTitleEmpty        Code = "EVENT_TITLE_EMPTY"
	CodeEventMaxRollInvalid    Code = "EVENT_MAX_ROLL_INVALID"
	CodeTaskInvalid            Code = "TASK_INVALID"
	CodeTaskRangeInvalid       Code = "TASK_RANGE_INVALID"
	CodeTaskRangeOverlap       Code = "TASK_RANGE_OVERLAP"
	CodeTaskCoverageIncomplete Code = "TASK_COVERAGE_INCOMPLETE"
	CodeDependencyInvalid      Code = "DEPENDENCY_INVALID"
	CodeDependencyDuplicate    Code = "DEPENDENCY_DUPLICATE"
	CodeDependencyOutsideStage Code = "DEPENDENCY_OUTSIDE_STAGE"

	// Stage errors
	CodeCompletionBoundsInvalid     Code = "COMPLETION_BOUNDS_INVALID"
	CodeEventSpaceInvalid           Code = "EVENT_SPACE_INVALID"
	CodeEventSpaceDuplicate         Code = "EVENT_SPACE_DUPLICATE"
	CodeProgressionInvalid          Code = "PROGRESSION_INVALID"
	CodeProgressionDefaultDuplicate Code = "PROGRESSION_DEFAULT_DUPLICATE"
	CodeStageTitleEmpty             Code = "STAGE_TITLE_EMPTY"
	CodeStageDuplicate              Code = "STAGE_DUPLICATE"
	CodeStageUnregistered           Code = "STAGE_UNREGISTERED"
	CodeScenarioEmpty               Code = "SCENARIO_EMPTY"

	// Play errors
	CodeEventUnavailable Code = "EVENT_UNAVAILABLE"
	CodeEventCompleted   Code = "EVENT_COMPLETED"
	CodeEventNotRolled   Code = "EVENT_NOT_ROLLED"

	// Invariant errors
	CodeRollOutOfBounds  Code = "ROLL_OUT_OF_BOUNDS"
	CodeRollUnbound      Code = "ROLL_UNBOUND"
	CodeVariableMismatch Code = "VARIABLE_MISMATCH"

	// Lookup errors
	CodeNotFound Code = "NOT_FOUND"

	// Authoring errors
	CodeScriptInvalid Code = "SCRIPT_INVALID"
)

// Category groups codes by how callers should react to them.
type Category string

const (
	// CategoryValidation marks malformed construction input. Callers retry
	// with corrected input; nothing was mutated.
	CategoryValidation Category = "validation"
	// CategoryPrecondition marks play calls made in the wrong state.
	CategoryPrecondition Category = "precondition"
	// CategoryInvariant marks broken construction invariants. These surface
	// to scenario authors, not players.
	CategoryInvariant Category = "invariant"
	// CategoryNotFound marks lookups of unknown entities.
	CategoryNotFound Category = "not_found"
	// CategoryUnknown marks codes without a category.
	CategoryUnknown Category = "unknown"
)

// Category maps domain codes to their category.
func (c Code) Category() Category {
	switch c {
	case CodeVariableNameInvalid,
		CodeVariableTypeInvalid,
		CodeVariableTypeMismatch,
		CodeVariableDuplicate,
		CodeVariableBoundsInvalid,
		CodeVariableBoundsAlreadySet,
		CodeVariableValueOutOfBounds,
		CodeVariableUnregistered,
		CodeConditionOperationInvalid,
		CodeConditionTargetInvalid,
		CodeOutcomeOperationInvalid,
		CodeOutcomeTargetInvalid,
		CodeEventTitleEmpty,
		CodeEventMaxRollInvalid,
		CodeTaskInvalid,
		CodeTaskRangeInvalid,
		CodeTaskRangeOverlap,
		CodeTaskCoverageIncomplete,
		CodeDependencyInvalid,
		CodeDependencyDuplicate,
		CodeDependencyOutsideStage,
		CodeCompletionBoundsInvalid,
		CodeEventSpaceInvalid,
		CodeEventSpaceDuplicate,
		CodeProgressionInvalid,
		CodeProgressionDefaultDuplicate,
		CodeStageTitleEmpty,
		CodeStageDuplicate,
		CodeStageUnregistered,
		CodeScenarioEmpty,
		CodeScriptInvalid:
		return CategoryValidation

	case CodeEventUnavailable,
		CodeEventCompleted,
		CodeEventNotRolled:
		return CategoryPrecondition

	case CodeRollOutOfBounds,
		CodeRollUnbound,
		CodeVariableMismatch:
		return CategoryInvariant

	case CodeNotFound:
		return CategoryNotFound

	default:
		return CategoryUnknown
	}
}
