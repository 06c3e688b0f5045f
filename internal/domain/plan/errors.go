package plan

import "errors"

var ErrInvalidOverride = errors.New("invalid plan override")
