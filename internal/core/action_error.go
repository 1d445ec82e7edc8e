package core

import (
	"errors"
	"fmt"

	"uyuni-actions/internal/types"
)

// ActionError rejects a scheduled action. Callers tell the reasons apart with
// errors.As and Kind.
type ActionError struct {
	Kind     types.FailureKind
	ServerID int64
	ActionID int64
	Message  string
}

func (e *ActionError) Error() string {
	return e.Message
}

func invalidAction(kind types.FailureKind, serverID int64, actionID int64, format string, args ...any) error {
	return &ActionError{
		Kind:     kind,
		ServerID: serverID,
		ActionID: actionID,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FailureKindOf returns the kind of the ActionError in err's chain, or false.
func FailureKindOf(err error) (types.FailureKind, bool) {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Kind, true
	}
	return "", false
}
