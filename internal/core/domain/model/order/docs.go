// Package order provides the Order aggregate written by order intake.
//
// The package includes:
//   - Order: the aggregate root holding the customer, the dish selection and the amount
//   - Item: one dish selected from one stall
//   - PaymentStatus: the pending → success|failed state machine
//
// Key business rules:
//   - An order has at least one item and a positive amount
//   - The amount defaults to Σ price × quantity when the caller omits it
//   - Payment status moves from Pending exactly once; Success and Failed are terminal
package order
