package trace

import (
	"github.com/hueify/hueify/internal/errors"
	"github.com/hueify/hueify/internal/rules"
)

// DefaultMaxChainDepth bounds cause-chain traversal when no explicit limit
// is configured. Well-formed chains are rarely more than a handful of
// records deep; the bound exists to guard against cyclic input.
const DefaultMaxChainDepth = 32

// Step is one exception of a traversed chain together with its walked,
// filtered frame sequence.
type Step struct {
	// Record is the exception this step renders.
	Record *Record
	// Elements is the filtered frame sequence produced by Walk.
	Elements []Element
	// Err is a TraceError when this record's frames were truncated because
	// of malformed input, nil otherwise.
	Err error
}

// Chain is the result of traversing an exception's cause chain. Steps are
// ordered cause-first (oldest exception first), matching conventional trace
// presentation.
type Chain struct {
	Steps []Step
	// Err is a TraceError when traversal was cut short by a cycle or the
	// depth bound, nil for well-formed chains. The renderer surfaces it as
	// a truncation placeholder line; partial output is always produced.
	Err error
}

// Truncated reports whether any part of the chain was cut short by
// malformed input.
func (c Chain) Truncated() bool {
	if c.Err != nil {
		return true
	}
	for _, s := range c.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Traverse walks the cause chain starting at the outermost (most recently
// raised) exception and runs every record through Walk with the same rule
// set. maxDepth bounds the traversal; values <= 0 select
// DefaultMaxChainDepth.
//
// The returned steps are reversed relative to traversal order, so the root
// cause comes first and the outermost exception last.
//
// A chain that revisits a record (a true cycle) or exceeds maxDepth is
// truncated at that point and the Chain carries a TraceError wrapping
// ErrChainTooDeep. Traversal always terminates.
func Traverse(root *Record, set *rules.Set, maxDepth int) Chain {
	if root == nil {
		return Chain{}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxChainDepth
	}

	var chain Chain
	seen := make(map[*Record]bool)

	// Outermost first; reversed below.
	for rec, depth := root, 0; rec != nil; rec, depth = rec.Cause, depth+1 {
		if seen[rec] {
			chain.Err = errors.NewTraceError("cause chain is cyclic", errors.ErrChainTooDeep).
				WithDepth(depth)
			break
		}
		if depth >= maxDepth {
			chain.Err = errors.NewTraceError("cause chain exceeds depth bound", errors.ErrChainTooDeep).
				WithDepth(depth)
			break
		}
		seen[rec] = true

		elements, err := Walk(rec.Frames, set)
		chain.Steps = append(chain.Steps, Step{Record: rec, Elements: elements, Err: err})
	}

	// Cause-first ordering.
	for i, j := 0, len(chain.Steps)-1; i < j; i, j = i+1, j-1 {
		chain.Steps[i], chain.Steps[j] = chain.Steps[j], chain.Steps[i]
	}

	return chain
}
