package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"hawkerflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("row lock timeout")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "stall not found",
			err:      errs.NewObjectNotFoundError("stall", "Maxwell/Tian Tian"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: Maxwell/Tian Tian",
		},
		{
			name:     "sub-order not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("subOrder", "O1", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: subOrder, ID is: O1 (cause: row lock timeout)",
		},
		{
			name:     "invalid order id",
			err:      errs.NewValueIsInvalidError("orderId"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: orderId",
		},
		{
			name:     "invalid payment status with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("payment status", cause),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: payment status (cause: row lock timeout)",
		},
		{
			name:     "quantity out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 99",
		},
		{
			name:     "wait time out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("waitTime", -5, 0, 240, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -5 is waitTime, min value is 0, max value is 240 (cause: row lock timeout)",
		},
		{
			name:     "missing dish name",
			err:      errs.NewValueIsRequiredError("dishName"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: dishName",
		},
		{
			name:     "missing token with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("token", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: token (cause: row lock timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.sentinel, errors.Unwrap(tt.err))
		})
	}
}

func TestSanitizeCollapsesLines(t *testing.T) {
	err := errs.NewObjectNotFoundError("order", "O1\nlevel=ERROR msg=forged")

	assert.Equal(t, "object not found: O1 level=ERROR msg=forged", err.Error())
	assert.NotContains(t, errs.NewValueIsOutOfRangeError("dish", "fish\nball", 0, 10).Error(), "\n")
}

func TestNonStringIDsUseDefaultFormatting(t *testing.T) {
	assert.Equal(t, "object not found: %!s(int=456)", errs.NewObjectNotFoundError("position", 456).Error())
}

func TestWrappedErrorsKeepSentinel(t *testing.T) {
	err := fmt.Errorf("complete dish: %w", errs.NewObjectNotFoundError("orderId", "O1"))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "orderId", notFound.ParamName)
	assert.Equal(t, "O1", notFound.ID)
}
