// Package order contains the Order aggregate and its derived statuses.
//
// An order never stores a status flag. OrderStatus is a pure function of the
// courier association and the three lifecycle timestamps plus the completion
// of the order's most recent delivery attempt; ScheduleStatus is a pure
// function of the timestamps against the configured delivery-time
// commitment. Both are recomputed on every read, so a failed or partial
// mutation can never leave a stale cached status visible.
package order
