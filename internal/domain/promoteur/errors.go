package promoteur

import "errors"

var (
	ErrPromoteurNotFound     = errors.New("promoteur not found")
	ErrChecklistItemNotFound = errors.New("onboarding checklist item not found")
	ErrStepNotSelfService    = errors.New("onboarding step is completed by the platform")
	ErrAlreadyExists         = errors.New("promoteur profile already exists for this account")
	ErrInvalidKYCTransition  = errors.New("invalid kyc status transition")
	ErrInvalidProofLevel     = errors.New("invalid financial proof level")
	ErrNoRestriction         = errors.New("promoteur has no active restriction")
	ErrInvalidCompliance     = errors.New("invalid compliance status")
)
