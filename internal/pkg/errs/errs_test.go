package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors_UnwrapToSentinels(t *testing.T) {
	cause := errors.New("row scan failed")

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "object not found",
			err:      errs.NewObjectNotFoundError("order", "8d34c211"),
			sentinel: errs.ErrObjectNotFound,
		},
		{
			name:     "object not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("courier", "8d34c211", cause),
			sentinel: errs.ErrObjectNotFound,
		},
		{
			name:     "value is invalid",
			err:      errs.NewValueIsInvalidError("status"),
			sentinel: errs.ErrValueIsInvalid,
		},
		{
			name:     "value is invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("status", cause),
			sentinel: errs.ErrValueIsInvalid,
		},
		{
			name:     "value is out of range",
			err:      errs.NewValueIsOutOfRangeError("totalPrice", -1.5, 0, 10000),
			sentinel: errs.ErrValueIsOutOfRange,
		},
		{
			name:     "value is required",
			err:      errs.NewValueIsRequiredError("name"),
			sentinel: errs.ErrValueIsRequired,
		},
		{
			name:     "value is required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("orderID", cause),
			sentinel: errs.ErrValueIsRequired,
		},
		{
			name:     "version is invalid",
			err:      errs.NewVersionIsInvalidError("aggregate version", cause),
			sentinel: errs.ErrVersionIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestObjectNotFoundError_Message(t *testing.T) {
	err := errs.NewObjectNotFoundError("order", "8d34c211")
	assert.Equal(t, "object not found: 8d34c211", err.Error())

	withCause := errs.NewObjectNotFoundErrorWithCause("order", "8d34c211", errors.New("record not found"))
	assert.Equal(t,
		"object not found: param is: order, ID is: 8d34c211 (cause: record not found)",
		withCause.Error())
}

func TestValueIsInvalidError_Message(t *testing.T) {
	err := errs.NewValueIsInvalidError("status")
	assert.Equal(t, "value is invalid: status", err.Error())

	withCause := errs.NewValueIsInvalidErrorWithCause("status", errors.New("7 is not a valid status"))
	assert.Equal(t, "value is invalid: status (cause: 7 is not a valid status)", withCause.Error())
}

func TestValueIsOutOfRangeError_CarriesBounds(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("totalPrice", -1.5, 0, 10000)

	assert.Equal(t, "totalPrice", err.ParamName)
	assert.Equal(t, -1.5, err.Value)
	assert.Equal(t, 0, err.Min)
	assert.Equal(t, 10000, err.Max)
	assert.Equal(t, "value is invalid: -1.5 is totalPrice, min value is 0, max value is 10000", err.Error())
}

func TestErrorMessages_AreSingleLine(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("name", errors.New("multi\nline\ncause"))

	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "multi line cause")
}
