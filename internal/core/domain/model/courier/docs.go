// Package courier contains the Courier aggregate and its derived status.
//
// A courier's operational status (Available/OnRoute/Inactive) is never
// persisted: it is derived from the isActive flag and whether the courier
// currently has an open delivery. The on-route sub-state is not directly
// settable; it only ever appears through an open delivery.
package courier
