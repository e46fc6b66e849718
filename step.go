package stepbuilder

import (
	"context"
	"slices"
)

// BuildFunc is the key-agnostic build operation signature. It produces one
// intermediate product from the owner instance.
type BuildFunc[O, P any] func(ctx context.Context, owner O) (P, error)

// KeyedBuildFunc is the key-aware build operation signature. It additionally
// receives the step key it was scheduled under, for operations that answer
// for several keys and discriminate by them.
type KeyedBuildFunc[O any, K comparable, P any] func(ctx context.Context, owner O, key K) (P, error)

// ProcessFunc is the key-agnostic process operation signature. It folds an
// intermediate product into the running state and returns the next state.
type ProcessFunc[O, P, S any] func(ctx context.Context, owner O, part P, state S) (S, error)

// KeyedProcessFunc is the key-aware process operation signature.
type KeyedProcessFunc[O any, K comparable, P, S any] func(ctx context.Context, owner O, part P, state S, key K) (S, error)

// BuildStep declares one build operation and the step keys it answers for.
// A declaration is created by one of the constructors and optionally widened
// with For; once handed to NewStepTable it must not be modified.
type BuildStep[O any, K comparable, P any] struct {
	keys  []K
	plain BuildFunc[O, P]
	keyed KeyedBuildFunc[O, K, P]
}

// NewBuildStep declares a key-agnostic build step answering for the given
// step keys.
func NewBuildStep[O any, K comparable, P any](fn BuildFunc[O, P], keys ...K) *BuildStep[O, K, P] {
	s := &BuildStep[O, K, P]{plain: fn}
	return s.For(keys...)
}

// NewKeyedBuildStep declares a key-aware build step answering for the given
// step keys.
func NewKeyedBuildStep[O any, K comparable, P any](fn KeyedBuildFunc[O, K, P], keys ...K) *BuildStep[O, K, P] {
	s := &BuildStep[O, K, P]{keyed: fn}
	return s.For(keys...)
}

// For merges additional step keys into the declaration and returns the same
// declaration, so one operation can answer for several keys. Keys already
// declared are ignored.
func (s *BuildStep[O, K, P]) For(keys ...K) *BuildStep[O, K, P] {
	for _, k := range keys {
		if !slices.Contains(s.keys, k) {
			s.keys = append(s.keys, k)
		}
	}
	return s
}

// ProcessStep declares one process operation, the step keys it answers for,
// and whether it is its builder type's default process step.
type ProcessStep[O any, K comparable, P, S any] struct {
	keys      []K
	isDefault bool
	plain     ProcessFunc[O, P, S]
	keyed     KeyedProcessFunc[O, K, P, S]
}

// NewProcessStep declares a key-agnostic process step answering for the
// given step keys.
func NewProcessStep[O any, K comparable, P, S any](fn ProcessFunc[O, P, S], keys ...K) *ProcessStep[O, K, P, S] {
	s := &ProcessStep[O, K, P, S]{plain: fn}
	return s.For(keys...)
}

// NewKeyedProcessStep declares a key-aware process step answering for the
// given step keys.
func NewKeyedProcessStep[O any, K comparable, P, S any](fn KeyedProcessFunc[O, K, P, S], keys ...K) *ProcessStep[O, K, P, S] {
	s := &ProcessStep[O, K, P, S]{keyed: fn}
	return s.For(keys...)
}

// For merges additional step keys into the declaration and returns the same
// declaration. Keys already declared are ignored.
func (s *ProcessStep[O, K, P, S]) For(keys ...K) *ProcessStep[O, K, P, S] {
	for _, k := range keys {
		if !slices.Contains(s.keys, k) {
			s.keys = append(s.keys, k)
		}
	}
	return s
}

// AsDefault marks the declaration as its builder type's default process step
// and returns the same declaration for chaining. At table construction every
// build key without an explicit process counterpart is backed by the default.
// At most one process step per table may be the default.
func (s *ProcessStep[O, K, P, S]) AsDefault() *ProcessStep[O, K, P, S] {
	s.isDefault = true
	return s
}
