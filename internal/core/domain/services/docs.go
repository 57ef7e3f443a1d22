// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - SubOrderPlanner: splits an order's dishes into one StallSubOrder per stall
//   - CompletionReporter: describes a fully completed sub-order for the
//     customer notification and the activity log
package services
