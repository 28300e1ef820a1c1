package luascript

import (
	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
)

// ErrScriptInvalid matches malformed script declarations with errors.Is.
var ErrScriptInvalid = apperrors.New(apperrors.CodeScriptInvalid, "invalid scenario script")

func scriptError(script, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeScriptInvalid, script+": "+reason, map[string]string{
		"Script": script,
		"Reason": reason,
	})
}
