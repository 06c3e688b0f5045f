package project

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrValidation       = errors.New("validation error")
	ErrInvalidMediaKind = errors.New("invalid media kind")
	ErrAlreadyPublished = errors.New("project already published")
	ErrProjectSuspended = errors.New("project is suspended")
	ErrNothingToChange  = errors.New("no key field changed")
)
