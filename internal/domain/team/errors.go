package team

import (
	"errors"
	"fmt"
)

var (
	// ErrAccessDenied means no team context could be resolved for the actor.
	ErrAccessDenied = errors.New("access denied: no promoteur context for this account")
	// ErrPermissionDenied means the context resolved but the permission is refused.
	ErrPermissionDenied = errors.New("permission denied")
	ErrEvaluation       = errors.New("unable to evaluate permissions")

	ErrUnknownPermission = errors.New("unknown permission")
	ErrInvalidRole       = errors.New("invalid role name")
	ErrRoleNotFound      = errors.New("team role not found")
	ErrMemberExists      = errors.New("user is already a team member")
	ErrMemberNotFound    = errors.New("team member not found")
	ErrOwnerNotMember    = errors.New("the owner cannot be added as a team member")
)

// EvaluationError wraps a lookup failure during resolution.
type EvaluationError struct {
	Op  string
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("team %s: %v", e.Op, e.Err)
}

func (e *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluation, e.Err}
}
