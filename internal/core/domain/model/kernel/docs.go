// Package kernel contains shared value objects used across aggregates:
// geographic locations with validated coordinates and the vehicle types
// couriers ride. Value objects are immutable and constructor-guarded, so a
// zero value never passes validation.
package kernel
