package stepbuilder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calc struct{}

func buildTen(_ context.Context, _ *calc) (int, error)  { return 10, nil }
func buildFive(_ context.Context, _ *calc) (int, error) { return 5, nil }

func addProcess(_ context.Context, _ *calc, part, state int) (int, error) {
	return state + part, nil
}

func TestNewStepTable(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		table, err := NewStepTable[*calc, int, int, int](nil, nil)
		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Zero(t, table.Len())
		assert.Empty(t, table.StepKeys())
	})

	t.Run("build and process keys are independent namespaces", func(t *testing.T) {
		table, err := NewStepTable(
			[]*BuildStep[*calc, int, int]{NewBuildStep(buildTen, 1)},
			[]*ProcessStep[*calc, int, int, int]{NewProcessStep(addProcess, 1)},
		)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, table.StepKeys())
	})

	t.Run("duplicate build key fails", func(t *testing.T) {
		_, err := NewStepTable[*calc, int, int, int](
			[]*BuildStep[*calc, int, int]{
				NewBuildStep(buildTen, 1),
				NewBuildStep(buildFive, 1),
			},
			nil,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStepKeyInUse)
		assert.ErrorContains(t, err, "build step key 1")
	})

	t.Run("duplicate process key fails", func(t *testing.T) {
		_, err := NewStepTable(
			nil,
			[]*ProcessStep[*calc, int, int, int]{
				NewProcessStep(addProcess, 7),
				NewProcessStep(addProcess, 7),
			},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStepKeyInUse)
		assert.ErrorContains(t, err, "process step key 7")
	})

	t.Run("multiple defaults fail", func(t *testing.T) {
		_, err := NewStepTable(
			nil,
			[]*ProcessStep[*calc, int, int, int]{
				NewProcessStep(addProcess, 1).AsDefault(),
				NewProcessStep(addProcess, 2).AsDefault(),
			},
		)
		assert.ErrorIs(t, err, ErrMultipleDefaults)
	})

	t.Run("declaration without keys fails", func(t *testing.T) {
		_, err := NewStepTable[*calc, int, int, int](
			[]*BuildStep[*calc, int, int]{NewBuildStep[*calc, int, int](buildTen)},
			nil,
		)
		assert.ErrorIs(t, err, ErrNoStepKeys)

		_, err = NewStepTable(
			nil,
			[]*ProcessStep[*calc, int, int, int]{NewProcessStep[*calc, int, int, int](addProcess)},
		)
		assert.ErrorIs(t, err, ErrNoStepKeys)
	})
}

func TestNewStepTable_DefaultBackfill(t *testing.T) {
	t.Run("build-only keys resolve to the default", func(t *testing.T) {
		defaultStep := NewProcessStep(addProcess, 1).AsDefault()
		table, err := NewStepTable(
			[]*BuildStep[*calc, int, int]{NewBuildStep(buildTen, 1, 2)},
			[]*ProcessStep[*calc, int, int, int]{defaultStep},
		)
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2}, table.StepKeys())
		assert.Same(t, defaultStep, table.processOps[1])
		assert.Same(t, defaultStep, table.processOps[2])
	})

	t.Run("explicit entries are never overwritten", func(t *testing.T) {
		explicit := NewProcessStep(addProcess, 2)
		defaultStep := NewProcessStep(addProcess, 1).AsDefault()
		table, err := NewStepTable(
			[]*BuildStep[*calc, int, int]{NewBuildStep(buildTen, 1, 2, 3)},
			[]*ProcessStep[*calc, int, int, int]{explicit, defaultStep},
		)
		require.NoError(t, err)

		// Explicit process keys first, in declaration order, then the
		// back-filled build-only key.
		assert.Equal(t, []int{2, 1, 3}, table.StepKeys())
		assert.Same(t, explicit, table.processOps[2])
		assert.Same(t, defaultStep, table.processOps[3])
	})

	t.Run("no default leaves build-only keys unscheduled", func(t *testing.T) {
		table, err := NewStepTable(
			[]*BuildStep[*calc, int, int]{NewBuildStep(buildTen, 1, 2)},
			[]*ProcessStep[*calc, int, int, int]{NewProcessStep(addProcess, 1)},
		)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, table.StepKeys())
	})
}

func TestStepKeys_ReturnsCopy(t *testing.T) {
	table, err := NewStepTable(
		[]*BuildStep[*calc, int, int]{NewBuildStep(buildTen, 1, 2)},
		[]*ProcessStep[*calc, int, int, int]{NewProcessStep(addProcess, 1, 2)},
	)
	require.NoError(t, err)

	keys := table.StepKeys()
	keys[0] = 99
	assert.Equal(t, []int{1, 2}, table.StepKeys())
}

func TestStepFor_MergesKeys(t *testing.T) {
	build := NewBuildStep(buildTen, 1).For(2).For(2, 3)
	assert.Equal(t, []int{1, 2, 3}, build.keys)

	process := NewProcessStep(addProcess, 1).For(1, 4)
	assert.Equal(t, []int{1, 4}, process.keys)
}

func TestMustStepTable(t *testing.T) {
	t.Run("returns table on valid declarations", func(t *testing.T) {
		table := MustStepTable(
			[]*BuildStep[*calc, int, int]{NewBuildStep(buildTen, 1)},
			[]*ProcessStep[*calc, int, int, int]{NewProcessStep(addProcess, 1)},
		)
		require.NotNil(t, table)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("panics on configuration error", func(t *testing.T) {
		assert.PanicsWithValue(t,
			"stepbuilder: build step key 1: step key already in use by another step",
			func() {
				MustStepTable[*calc, int, int, int](
					[]*BuildStep[*calc, int, int]{
						NewBuildStep(buildTen, 1),
						NewBuildStep(buildFive, 1),
					},
					nil,
				)
			})
	})
}
