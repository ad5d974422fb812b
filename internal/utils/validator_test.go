// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordHolder struct {
	Password string `validate:"strong_password"`
}

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Sup3rSecret", true},
		{"short1A", false},       // too short
		{"alllowercase1", false}, // no upper
		{"ALLUPPERCASE1", false}, // no lower
		{"NoDigitsHere", false},  // no number
	}

	for _, tc := range cases {
		err := ValidateStruct(&passwordHolder{Password: tc.password})
		if tc.ok {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestGetValidationErrorsMessages(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := ValidateStruct(&form{Email: "not-an-email"})
	errs := GetValidationErrors(err)
	assert.Len(t, errs, 2)

	assert.Empty(t, GetValidationErrors(nil))
}
