package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Completion records how a delivery attempt ended. It is set together with
// the end time, never independently, and never changes afterwards.
type Completion int

const (
	// CompletionUnknown represents an invalid or undefined completion.
	// This value (0) helps catch uninitialized Completion values.
	CompletionUnknown Completion = iota

	// Completed means the courier handed the order to the customer.
	Completed

	// CustomerRefused means the customer declined the order at the door.
	CustomerRefused

	// Cancelled means the attempt was cancelled before handover.
	Cancelled

	// Failed means the attempt ended for an unexpected operational reason.
	Failed
)

func getCompletionStrings() map[Completion]string {
	return map[Completion]string{
		CompletionUnknown: "Unknown",
		Completed:         "Completed",
		CustomerRefused:   "CustomerRefused",
		Cancelled:         "Cancelled",
		Failed:            "Failed",
	}
}

func getValidCompletionStrings() map[Completion]string {
	//nolint:exhaustive // CompletionUnknown is intentionally excluded as it's invalid
	return map[Completion]string{
		Completed:       "Completed",
		CustomerRefused: "CustomerRefused",
		Cancelled:       "Cancelled",
		Failed:          "Failed",
	}
}

// Validate checks if the Completion value is valid.
func (c Completion) Validate() error {
	if _, ok := getValidCompletionStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("completion", fmt.Errorf("%d is not a valid completion", c))
	}
	return nil
}

// String returns the human-readable name of the completion.
// It implements fmt.Stringer and is safe on any Completion value.
func (c Completion) String() string {
	if str, ok := getCompletionStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// ParseCompletion converts a string produced by String back into a Completion.
func ParseCompletion(s string) (Completion, error) {
	for c, str := range getValidCompletionStrings() {
		if str == s {
			return c, nil
		}
	}
	return CompletionUnknown, errs.NewValueIsInvalidErrorWithCause("completion", fmt.Errorf("%q is not a valid completion", s))
}
