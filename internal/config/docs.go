// Package config holds the process-wide virtual clock and the tunable
// simulation parameters behind synchronized accessors.
package config
