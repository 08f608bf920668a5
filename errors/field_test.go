package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that the result can be compared.
	var (
		unauthorizedNameErr = Field("name", ErrUnauthorized, "a")
		humanNameErr        = Field("name", ErrHuman, "b")
		emptyGenderErr      = Field("gender", ErrEmpty, "gender is required")
		userMultiErr        = Field("user", Append(
			humanNameErr,
			Append(emptyGenderErr, ErrNotFound),
		), "user data invalid")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedNameErr,
			Field: "name",
			Want:  []error{unauthorizedNameErr},
		},
		"two error found by the name": {
			Err:   Append(unauthorizedNameErr, humanNameErr),
			Field: "name",
			Want:  []error{unauthorizedNameErr, humanNameErr},
		},
		"field can contain a multierror": {
			Err:   userMultiErr,
			Field: "user",
			Want:  []error{userMultiErr},
		},
		"field can inspect errors tree to find match": {
			Err:   userMultiErr,
			Field: "gender",
			Want:  []error{emptyGenderErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "foo",
			Want:  nil,
		},
		"no match": {
			Err:   emptyGenderErr,
			Field: "age",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.Want, FieldErrors(tc.Err, tc.Field))
		})
	}
}

func TestFieldNilError(t *testing.T) {
	assert.Nil(t, Field("Name", nil, "ignored"))
	assert.Nil(t, AppendField(nil, "Name", nil))
	assert.True(t, ErrEmpty.Is(AppendField(nil, "Name", ErrEmpty)))
}
