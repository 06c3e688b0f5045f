package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email  string  `json:"email" validate:"required,email"`
	Budget float64 `json:"budget" validate:"gte=0"`
	Note   string  `json:"-" validate:"max=3"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(&sample{Email: "a@b.co"}))

	errs := Validate(&sample{Email: "nope", Budget: -1})
	assert.Equal(t, map[string]string{"email": "email", "budget": "gte"}, errs)
}
