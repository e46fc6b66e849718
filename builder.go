package stepbuilder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/stepbuilder/ctxlog"
)

// Hooks supplies the user-defined boundary operations of a builder type.
// CreateInitialState and EvaluateFinalState are required; a nil entry fails
// Build with ErrHookNotImplemented before any step executes.
type Hooks[O any, K comparable, S, F any] struct {
	// CreateInitialState returns the seed state. Invoked exactly once per
	// Build, first.
	CreateInitialState func(ctx context.Context, owner O) (S, error)

	// EvaluateFinalState converts the terminal state into the final
	// product. Invoked exactly once per Build, last.
	EvaluateFinalState func(ctx context.Context, owner O, state S) (F, error)

	// FilterAndSortStepKeys maps the declared step key universe to the
	// execution order; it may drop or reorder keys to run a conditional or
	// partial pipeline. It must be pure. Nil means identity, preserving the
	// table's declaration order.
	FilterAndSortStepKeys func(owner O, keys []K) []K
}

// Builder drives the build→process loop for one concrete builder type. A
// Builder is created once per type, holds that type's read-only StepTable
// and hooks, and is safe for concurrent Build calls: every per-run value is
// local to the call.
type Builder[O any, K comparable, P, S, F any] struct {
	table  *StepTable[O, K, P, S]
	hooks  Hooks[O, K, S, F]
	logger *slog.Logger
}

// New creates a Builder from a type's step table and hooks.
func New[O any, K comparable, P, S, F any](table *StepTable[O, K, P, S], hooks Hooks[O, K, S, F], opts ...Option) *Builder[O, K, P, S, F] {
	cfg := newConfig(opts)
	return &Builder[O, K, P, S, F]{
		table:  table,
		hooks:  hooks,
		logger: cfg.logger,
	}
}

// Build runs the full pipeline for one owner instance and returns the final
// product. For each scheduled step key, in order, it invokes the key's build
// operation to obtain an intermediate product, then the key's process
// operation to fold that product into the state; the final state is handed
// to EvaluateFinalState. Any failure aborts the run and is returned wrapped
// with the offending step key; errors.Is and errors.As still reach the
// step's own error.
func (b *Builder[O, K, P, S, F]) Build(ctx context.Context, owner O) (F, error) {
	var zero F

	if b.logger != nil {
		ctx = ctxlog.WithLogger(ctx, b.logger)
	}
	logger := ctxlog.FromContext(ctx)

	if b.hooks.CreateInitialState == nil {
		return zero, fmt.Errorf("CreateInitialState: %w", ErrHookNotImplemented)
	}
	if b.hooks.EvaluateFinalState == nil {
		return zero, fmt.Errorf("EvaluateFinalState: %w", ErrHookNotImplemented)
	}

	state, err := b.hooks.CreateInitialState(ctx, owner)
	if err != nil {
		return zero, fmt.Errorf("create initial state: %w", err)
	}

	keys := b.table.StepKeys()
	if b.hooks.FilterAndSortStepKeys != nil {
		keys = b.hooks.FilterAndSortStepKeys(owner, keys)
	}
	logger.Debug("Starting build run.", "scheduled_steps", len(keys))

	for _, key := range keys {
		stepLogger := logger.With("step_key", key)

		buildStep, ok := b.table.buildOps[key]
		if !ok {
			return zero, fmt.Errorf("step key %v: %w", key, ErrNoBuildStep)
		}
		processStep, ok := b.table.processOps[key]
		if !ok {
			return zero, fmt.Errorf("step key %v: %w", key, ErrNoProcessStep)
		}

		runBuild, err := buildStep.bind(owner)
		if err != nil {
			return zero, fmt.Errorf("step key %v: %w", key, err)
		}
		runProcess, err := processStep.bind(owner)
		if err != nil {
			return zero, fmt.Errorf("step key %v: %w", key, err)
		}

		stepLogger.Debug("Running build step.")
		part, err := runBuild(ctx, key)
		if err != nil {
			stepLogger.Error("Build step failed.", "error", err)
			return zero, fmt.Errorf("build step %v: %w", key, err)
		}

		stepLogger.Debug("Running process step.")
		state, err = runProcess(ctx, part, state, key)
		if err != nil {
			stepLogger.Error("Process step failed.", "error", err)
			return zero, fmt.Errorf("process step %v: %w", key, err)
		}
	}

	logger.Debug("All steps finished, evaluating final state.")
	final, err := b.hooks.EvaluateFinalState(ctx, owner, state)
	if err != nil {
		return zero, fmt.Errorf("evaluate final state: %w", err)
	}
	return final, nil
}
