package scenario

import (
	"strconv"

	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
)

// Sentinels for errors.Is. Returned errors carry the same code plus metadata
// naming the offending entity.
var (
	ErrVariableNameInvalid    = apperrors.New(apperrors.CodeVariableNameInvalid, "invalid variable name")
	ErrVariableTypeInvalid    = apperrors.New(apperrors.CodeVariableTypeInvalid, "invalid variable type")
	ErrVariableTypeMismatch   = apperrors.New(apperrors.CodeVariableTypeMismatch, "value type does not match variable")
	ErrVariableDuplicate      = apperrors.New(apperrors.CodeVariableDuplicate, "variable already defined")
	ErrVariableBoundsInvalid  = apperrors.New(apperrors.CodeVariableBoundsInvalid, "invalid variable bounds")
	ErrVariableBoundsSet      = apperrors.New(apperrors.CodeVariableBoundsAlreadySet, "variable bounds already set")
	ErrVariableUnregistered   = apperrors.New(apperrors.CodeVariableUnregistered, "variable not registered")
	ErrConditionOperation     = apperrors.New(apperrors.CodeConditionOperationInvalid, "condition operation not allowed")
	ErrConditionTarget        = apperrors.New(apperrors.CodeConditionTargetInvalid, "invalid condition target")
	ErrOutcomeOperation       = apperrors.New(apperrors.CodeOutcomeOperationInvalid, "outcome operation not allowed")
	ErrOutcomeTarget          = apperrors.New(apperrors.CodeOutcomeTargetInvalid, "invalid outcome target")
	ErrEventTitleEmpty        = apperrors.New(apperrors.CodeEventTitleEmpty, "event title is required")
	ErrEventMaxRoll           = apperrors.New(apperrors.CodeEventMaxRollInvalid, "invalid max roll")
	ErrTaskInvalid            = apperrors.New(apperrors.CodeTaskInvalid, "task is required")
	ErrTaskRange              = apperrors.New(apperrors.CodeTaskRangeInvalid, "invalid task range")
	ErrTaskOverlap            = apperrors.New(apperrors.CodeTaskRangeOverlap, "task range overlaps")
	ErrTaskCoverage           = apperrors.New(apperrors.CodeTaskCoverageIncomplete, "task ranges do not cover roll domain")
	ErrDependencyInvalid      = apperrors.New(apperrors.CodeDependencyInvalid, "invalid dependency")
	ErrDependencyDuplicate    = apperrors.New(apperrors.CodeDependencyDuplicate, "dependency already declared")
	ErrDependencyOutsideStage = apperrors.New(apperrors.CodeDependencyOutsideStage, "dependency outside stage")
	ErrCompletionBounds       = apperrors.New(apperrors.CodeCompletionBoundsInvalid, "invalid completion bounds")
	ErrEventSpaceInvalid      = apperrors.New(apperrors.CodeEventSpaceInvalid, "invalid event space")
	ErrEventSpaceDuplicate    = apperrors.New(apperrors.CodeEventSpaceDuplicate, "event already placed")
	ErrProgressionInvalid     = apperrors.New(apperrors.CodeProgressionInvalid, "invalid progression")
	ErrProgressionDefault     = apperrors.New(apperrors.CodeProgressionDefaultDuplicate, "default progression already set")
	ErrStageTitleEmpty        = apperrors.New(apperrors.CodeStageTitleEmpty, "stage title is required")
	ErrStageDuplicate         = apperrors.New(apperrors.CodeStageDuplicate, "stage already defined")
	ErrStageUnregistered      = apperrors.New(apperrors.CodeStageUnregistered, "stage not registered")
	ErrScenarioEmpty          = apperrors.New(apperrors.CodeScenarioEmpty, "scenario has no stages")
	ErrRollOutOfBounds        = apperrors.New(apperrors.CodeRollOutOfBounds, "roll out of bounds")
	ErrRollUnbound            = apperrors.New(apperrors.CodeRollUnbound, "roll not bound by any task")
)

func fail(sentinel *apperrors.Error, message string, kv ...string) error {
	metadata := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		metadata[kv[i]] = kv[i+1]
	}
	return apperrors.WithMetadata(sentinel.Code, message, metadata)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
