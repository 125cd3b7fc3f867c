// Package sim drives the system forward on the virtual clock. Each tick
// advances time and generates probabilistic courier activity, always through
// the same command handlers the API uses, so domain invariants hold no matter
// who mutates.
package sim
