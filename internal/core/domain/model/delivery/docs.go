// Package delivery contains the Delivery aggregate: one record per courier
// attempt at an order. A delivery opens when a courier is associated to an
// order and closes exactly once with a completion status; an order
// accumulates delivery history across reassignment.
package delivery
