package quota

import (
	"errors"
	"fmt"

	"immotrust/internal/domain/plan"
)

var (
	// ErrEvaluation means the decision could not be computed. It is never a deny.
	ErrEvaluation        = errors.New("unable to evaluate quota")
	ErrComplianceBlocked = errors.New("promoteur is suspended for compliance reasons")

	// Limit errors returned when a promoteur exceeds their plan
	ErrProjectLimitReached       = errors.New("project limit reached for your current plan")
	ErrActiveProjectLimitReached = errors.New("published project limit reached for your current plan")
	ErrMonthlyUpdateLimitReached = errors.New("monthly update limit reached for your current plan")
	ErrDocumentLimitReached      = errors.New("document limit per project reached for your current plan")
	ErrMediaLimitReached         = errors.New("media limit per project reached for your current plan")
	ErrVideoLimitReached         = errors.New("video limit per project reached for your current plan")
	ErrTeamMemberLimitReached    = errors.New("team member limit reached for your current plan")
	ErrFeatureNotAvailable       = errors.New("this feature is not available on your current plan")
)

// LimitError carries the numbers behind a denial for UI display.
type LimitError struct {
	Err       error
	Resource  string
	Current   int
	Limit     int
	Plan      plan.Tier
	UpgradeTo plan.Tier
}

func (e *LimitError) Error() string { return e.Err.Error() }
func (e *LimitError) Unwrap() error { return e.Err }

// EvaluationError wraps a lookup failure. errors.Is matches both ErrEvaluation
// and the underlying cause.
type EvaluationError struct {
	Op  string
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("quota %s: %v", e.Op, e.Err)
}

func (e *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluation, e.Err}
}
