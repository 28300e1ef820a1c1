package play

import (
	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
)

// Sentinels for errors.Is.
var (
	ErrEventUnavailable = apperrors.New(apperrors.CodeEventUnavailable, "event is not available")
	ErrEventCompleted   = apperrors.New(apperrors.CodeEventCompleted, "event already completed")
	ErrEventNotRolled   = apperrors.New(apperrors.CodeEventNotRolled, "event has not been rolled")
	ErrVariableMismatch = apperrors.New(apperrors.CodeVariableMismatch, "outcome targets another variable")
)

func fail(sentinel *apperrors.Error, message string, kv ...string) error {
	metadata := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		metadata[kv[i]] = kv[i+1]
	}
	return apperrors.WithMetadata(sentinel.Code, message, metadata)
}
