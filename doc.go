// Package stepbuilder provides a generic engine for two-phase build/process
// pipelines.
//
// A concrete builder type declares a set of named build steps (each producing
// an intermediate product) and a set of named process steps (each folding an
// intermediate product into a running state), joined by a shared step key.
// The declarations for one type are collected once into a read-only
// [StepTable]; a [Builder] then drives the paired build→process loop to
// completion, strictly in order, threading the evolving state from one step
// to the next and handing the terminal state to a user hook for final
// evaluation.
//
// Declarations are explicit and ordered:
//
//	var table = stepbuilder.MustStepTable(
//		[]*stepbuilder.BuildStep[*Report, string, string]{
//			stepbuilder.NewBuildStep(renderHeader, "header"),
//			stepbuilder.NewBuildStep(renderBody, "body"),
//		},
//		[]*stepbuilder.ProcessStep[*Report, string, string, []string]{
//			stepbuilder.NewProcessStep(appendSection, "header").AsDefault(),
//		},
//	)
//
// A process step may be marked as the default for its type; every build key
// without an explicit process counterpart is backed by the default at table
// construction time. Each operation comes in a key-agnostic and a key-aware
// variant, chosen at declaration time, so step authors only take the step
// key when their logic discriminates by it.
//
// Tables are built once per concrete builder type and never mutated, so any
// number of Build calls may run concurrently against the same table. All
// per-run values live on the calling goroutine's stack; the engine spawns
// nothing and runs every step to completion in sequence.
package stepbuilder
