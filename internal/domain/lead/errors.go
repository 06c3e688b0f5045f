package lead

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead not found")
	ErrProjectUnavailable = errors.New("project is not accepting leads")
	ErrInvalidStatus      = errors.New("invalid lead status")
)
