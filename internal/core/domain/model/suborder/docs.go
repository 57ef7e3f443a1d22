// Package suborder models the per-stall slice of an order that the fulfillment
// engine owns.
//
// A StallSubOrder is created at most once per (stall, order) when an
// order-created event is fanned out, holds one DishLine per ordered dish and is
// deleted once every line is completed. DishLine.Complete is a guarded
// transition: completing a line twice changes nothing, which keeps stall
// aggregates from being adjusted twice for the same dish.
package suborder
