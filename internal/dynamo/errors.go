package dynamo

import "errors"

// Domain errors returned by configuration validation. The engine itself
// never returns errors; invalid input is rejected before a Simulator exists.
var (
	// ErrInvalidStep indicates a non-positive or non-finite step size.
	ErrInvalidStep = errors.New("dynamo: step size must be positive and finite")

	// ErrInvalidHorizon indicates a negative or non-finite run time.
	ErrInvalidHorizon = errors.New("dynamo: run time must be non-negative and finite")

	// ErrNegativeDensity indicates a negative or non-finite population density.
	ErrNegativeDensity = errors.New("dynamo: population density must be non-negative and finite")

	// ErrParameterBounds indicates a rate coefficient outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the model does not define.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)
