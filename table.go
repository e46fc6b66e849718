package stepbuilder

import (
	"fmt"
	"log/slog"
	"slices"
)

// StepTable holds a builder type's step declarations, keyed by step key: one
// mapping for build operations and one for process operations. A table is
// constructed exactly once per concrete builder type and is read-only
// afterwards, so it is safe for concurrent use by any number of builders.
type StepTable[O any, K comparable, P, S any] struct {
	buildOps   map[K]*BuildStep[O, K, P]
	processOps map[K]*ProcessStep[O, K, P, S]

	// order is the process-key universe in declaration order: explicit
	// process keys first, then keys back-filled from the default. This is
	// the sequence the identity filter hook preserves.
	order []K
}

// NewStepTable collects ordered build and process step declarations into a
// table. It fails if a declaration carries no keys, if a step key is claimed
// twice within one category, or if more than one process step is marked as
// the default. When a default exists, every build key without an explicit
// process counterpart is backed by the default's operation; explicit entries
// are never overwritten.
func NewStepTable[O any, K comparable, P, S any](buildSteps []*BuildStep[O, K, P], processSteps []*ProcessStep[O, K, P, S]) (*StepTable[O, K, P, S], error) {
	t := &StepTable[O, K, P, S]{
		buildOps:   make(map[K]*BuildStep[O, K, P]),
		processOps: make(map[K]*ProcessStep[O, K, P, S]),
	}

	// Resolve the default before inserting anything, so a conflicting pair
	// of defaults fails regardless of declaration order.
	var defaultStep *ProcessStep[O, K, P, S]
	for _, ps := range processSteps {
		if !ps.isDefault {
			continue
		}
		if defaultStep != nil {
			return nil, ErrMultipleDefaults
		}
		defaultStep = ps
	}

	var buildOrder []K
	for _, bs := range buildSteps {
		if len(bs.keys) == 0 {
			return nil, fmt.Errorf("build step: %w", ErrNoStepKeys)
		}
		for _, key := range bs.keys {
			if _, exists := t.buildOps[key]; exists {
				return nil, fmt.Errorf("build step key %v: %w", key, ErrStepKeyInUse)
			}
			slog.Debug("Registering build step.", "step_key", key)
			t.buildOps[key] = bs
			buildOrder = append(buildOrder, key)
		}
	}

	for _, ps := range processSteps {
		if len(ps.keys) == 0 {
			return nil, fmt.Errorf("process step: %w", ErrNoStepKeys)
		}
		for _, key := range ps.keys {
			if _, exists := t.processOps[key]; exists {
				return nil, fmt.Errorf("process step key %v: %w", key, ErrStepKeyInUse)
			}
			slog.Debug("Registering process step.", "step_key", key, "default", ps.isDefault)
			t.processOps[key] = ps
			t.order = append(t.order, key)
		}
	}

	if defaultStep != nil {
		for _, key := range buildOrder {
			if _, exists := t.processOps[key]; exists {
				continue
			}
			slog.Debug("Back-filling default process step.", "step_key", key)
			t.processOps[key] = defaultStep
			t.order = append(t.order, key)
		}
	}

	return t, nil
}

// MustStepTable is like NewStepTable but panics on error. It is intended for
// package-variable initialization of a builder type's table, where a failure
// is a programming error in the type's declarations.
func MustStepTable[O any, K comparable, P, S any](buildSteps []*BuildStep[O, K, P], processSteps []*ProcessStep[O, K, P, S]) *StepTable[O, K, P, S] {
	t, err := NewStepTable(buildSteps, processSteps)
	if err != nil {
		panic(fmt.Sprintf("stepbuilder: %v", err))
	}
	return t
}

// StepKeys returns a copy of the table's step key universe in declaration
// order. This is the sequence Build executes when the filter hook is absent.
func (t *StepTable[O, K, P, S]) StepKeys() []K {
	return slices.Clone(t.order)
}

// Len reports the number of step keys eligible for a build run.
func (t *StepTable[O, K, P, S]) Len() int {
	return len(t.order)
}
