// Package notify delivers change notifications to registered observers.
// Delivery is synchronous and best effort: a panicking observer is logged
// and skipped, it never blocks the other observers or the caller.
package notify
