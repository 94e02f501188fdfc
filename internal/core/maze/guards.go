package maze

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks caller-side misuse of the prober. It is fatal for
// the run: callers must not retry.
var ErrContractViolation = errors.New("contract violation")

var (
	// ErrAlreadySubmitted is the cause when a location is submitted twice in one run.
	ErrAlreadySubmitted = errors.New("location already submitted")
	// ErrWallSubmitted is the cause when a wall is submitted.
	ErrWallSubmitted = errors.New("location is a wall")
)

// ContractViolationError reports a rejected submission.
type ContractViolationError struct {
	Location Location
	Cause    error
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("contract violation: %s: %v", e.Location, e.Cause)
}

// Unwrap exposes the cause so errors.Is works with ErrAlreadySubmitted and ErrWallSubmitted.
func (e *ContractViolationError) Unwrap() error { return e.Cause }

// Is reports ErrContractViolation as matching every ContractViolationError.
func (e *ContractViolationError) Is(target error) bool {
	return target == ErrContractViolation
}

// SubmitContext is the pre-fetched state needed to decide whether a probe may be submitted.
type SubmitContext struct {
	Location         Location
	Kind             Kind
	AlreadySubmitted bool
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
	cause   error
	loc     Location
}

// Error returns the guard result as a *ContractViolationError if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &ContractViolationError{Location: r.loc, Cause: r.cause}
}

// CanSubmit evaluates whether a location may be handed to the prober.
// Rules: a location is probed at most once per run, and walls are never probed.
// The duplicate check wins when both rules fail.
func CanSubmit(ctx SubmitContext) GuardResult {
	if ctx.AlreadySubmitted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("location %s already submitted", ctx.Location),
			cause:   ErrAlreadySubmitted,
			loc:     ctx.Location,
		}
	}
	if ctx.Kind == Wall {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("location %s is a wall", ctx.Location),
			cause:   ErrWallSubmitted,
			loc:     ctx.Location,
		}
	}
	return GuardResult{Allowed: true}
}
