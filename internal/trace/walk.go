package trace

import (
	"github.com/hueify/hueify/internal/errors"
	"github.com/hueify/hueify/internal/rules"
)

// Element is one entry in a walked frame sequence: either a kept frame or
// an elision span summarizing consecutive dropped frames.
type Element interface {
	element()
}

// KeptFrame is a frame that survived filtering.
type KeptFrame struct {
	// Frame is the kept frame.
	Frame Frame
	// Index is the frame's position in the original sequence.
	Index int
}

func (KeptFrame) element() {}

// ElisionSpan is a run of one or more consecutive dropped frames. The count
// is always surfaced in rendered output, even for a single frame, so the
// user can tell filtering occurred.
type ElisionSpan struct {
	// Start is the index of the first dropped frame in the original sequence.
	Start int
	// Count is the number of dropped frames in the run.
	Count int
}

func (ElisionSpan) element() {}

// Walk filters a frame sequence through the rule set, preserving order and
// grouping consecutive dropped frames into elision spans.
//
// If the rules would drop every frame, the innermost and outermost frames
// are force-kept so the rendered trace is never empty; the frames between
// them still collapse into a span.
//
// A malformed frame (missing both location and symbol) truncates the walk:
// the valid prefix is filtered normally and a TraceError wrapping
// ErrMalformedFrame is returned alongside the partial result. Callers render
// the partial output with a placeholder line rather than failing.
func Walk(frames []Frame, set *rules.Set) ([]Element, error) {
	var walkErr error
	for i, f := range frames {
		if !f.Valid() {
			walkErr = errors.NewTraceError("frame missing location and symbol", errors.ErrMalformedFrame).
				WithFrameIndex(i)
			frames = frames[:i]
			break
		}
	}

	if len(frames) == 0 {
		return nil, walkErr
	}

	decisions := make([]rules.Action, len(frames))
	kept := 0
	for i, f := range frames {
		decisions[i] = set.Evaluate(f.Location, f.Function)
		if decisions[i] == rules.Keep {
			kept++
		}
	}

	// Aggressive filtering must leave orientation context: force-keep the
	// ends when every frame would otherwise drop.
	if kept == 0 {
		decisions[0] = rules.Keep
		decisions[len(decisions)-1] = rules.Keep
	}

	var elements []Element
	runStart, runCount := 0, 0
	flush := func() {
		if runCount > 0 {
			elements = append(elements, ElisionSpan{Start: runStart, Count: runCount})
			runCount = 0
		}
	}

	for i, f := range frames {
		if decisions[i] == rules.Drop {
			if runCount == 0 {
				runStart = i
			}
			runCount++
			continue
		}
		flush()
		elements = append(elements, KeptFrame{Frame: f, Index: i})
	}
	flush()

	return elements, walkErr
}
