package stepbuilder

import "errors"

// Configuration errors are surfaced at table construction time and signal a
// mistake in the concrete builder type's declarations, never a runtime data
// error. Lookup and arity errors surface during Build.
var (
	// ErrNoStepKeys is returned when a declaration carries an empty key set.
	ErrNoStepKeys = errors.New("step declares no step keys")

	// ErrStepKeyInUse is returned when two declarations of the same category
	// claim the same step key. The build and process tables are independent
	// namespaces; the same key may appear once in each.
	ErrStepKeyInUse = errors.New("step key already in use by another step")

	// ErrMultipleDefaults is returned when more than one process step is
	// marked as the default for a single builder type.
	ErrMultipleDefaults = errors.New("multiple default process steps")

	// ErrUnexpectedArity is returned on first invocation of a declaration
	// that does not carry exactly one operation variant.
	ErrUnexpectedArity = errors.New("unexpected arity")

	// ErrNoBuildStep is returned from Build when a scheduled step key has no
	// registered build operation.
	ErrNoBuildStep = errors.New("no build step registered")

	// ErrNoProcessStep is returned from Build when a scheduled step key has
	// no registered process operation. This only happens when the filter
	// hook schedules a key outside the table's universe.
	ErrNoProcessStep = errors.New("no process step registered")

	// ErrHookNotImplemented is returned from Build when a required hook is
	// missing from the builder's Hooks.
	ErrHookNotImplemented = errors.New("hook not implemented")
)
