// Package errs holds the typed errors shared by the domain model, the use
// cases and the adapters.
//
// Every type unwraps to a sentinel, so callers branch with errors.Is:
//
//	ErrValueIsRequired    a mandatory field such as userId or dishName is empty
//	ErrValueIsInvalid     a value breaks a rule, e.g. an orderId with a '.'
//	ErrValueIsOutOfRange  a number outside its bounds, e.g. quantity 0
//	ErrObjectNotFound     an order, stall or sub-order that does not exist
//
// The HTTP adapter answers the first three with 400 and the last with 404.
// String values are collapsed to one line before they are formatted, so a
// client-supplied id cannot split a log record.
package errs
