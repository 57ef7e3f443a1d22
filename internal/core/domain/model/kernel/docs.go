// Package kernel provides the value objects shared by every hawkerflow aggregate.
//
// The package includes:
//   - OrderID: a customer order identifier that is safe to embed in broker routing keys
//   - StallRef: the (hawkerCenter, stallName) pair that identifies a stall
//   - Money: an exact decimal amount backed by github.com/shopspring/decimal
//
// Values are immutable and safe for concurrent use. Constructors validate their
// input and report problems with the typed errors from internal/pkg/errs.
package kernel
