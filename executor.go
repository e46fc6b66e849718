package stepbuilder

import (
	"context"
	"fmt"
)

// Executors are the second stage of a declaration: binding a step to one
// owner instance yields a plain closure with a single calling convention,
// chosen from the variant the author picked at declaration time. A
// declaration carrying no operation (or both variants at once) is malformed;
// that is only detected here, on first invocation, never at table
// construction.

type buildExecutor[K comparable, P any] func(ctx context.Context, key K) (P, error)

type processExecutor[K comparable, P, S any] func(ctx context.Context, part P, state S, key K) (S, error)

// bind instantiates the build operation for one owner instance.
func (s *BuildStep[O, K, P]) bind(owner O) (buildExecutor[K, P], error) {
	switch {
	case s.plain != nil && s.keyed == nil:
		return func(ctx context.Context, _ K) (P, error) {
			return s.plain(ctx, owner)
		}, nil
	case s.keyed != nil && s.plain == nil:
		return func(ctx context.Context, key K) (P, error) {
			return s.keyed(ctx, owner, key)
		}, nil
	default:
		return nil, fmt.Errorf("%w: build step must carry exactly one operation", ErrUnexpectedArity)
	}
}

// bind instantiates the process operation for one owner instance.
func (s *ProcessStep[O, K, P, S]) bind(owner O) (processExecutor[K, P, S], error) {
	switch {
	case s.plain != nil && s.keyed == nil:
		return func(ctx context.Context, part P, state S, _ K) (S, error) {
			return s.plain(ctx, owner, part, state)
		}, nil
	case s.keyed != nil && s.plain == nil:
		return func(ctx context.Context, part P, state S, key K) (S, error) {
			return s.keyed(ctx, owner, part, state, key)
		}, nil
	default:
		return nil, fmt.Errorf("%w: process step must carry exactly one operation", ErrUnexpectedArity)
	}
}
