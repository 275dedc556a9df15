// Package trace models captured exception traces and implements the frame
// walker and cause-chain traversal that feed the renderer.
//
// A Record is one exception instance: its type name, message, ordered frames,
// and an optional back-reference to the exception that caused it. The engine
// treats records as read-only; they are built once at capture time by an
// external collaborator and never mutated here.
package trace

// Frame is one entry in a captured call stack.
type Frame struct {
	// Location identifies the source of the frame: a module path or
	// absolute file path, normalized to forward slashes by the capturer.
	Location string
	// Function is the symbolic name of the function or method.
	Function string
	// Line is the 1-based line number, 0 when unknown.
	Line int
	// Source is the optional source-line text.
	Source string
}

// Valid reports whether the frame carries the fields required for rendering.
// A frame with neither a location nor a symbol cannot be presented usefully
// and is treated as malformed input.
func (f Frame) Valid() bool {
	return f.Location != "" || f.Function != ""
}

// Record is one exception instance's metadata plus its ordered frames.
// Cause points at the exception this one was raised while handling, forming
// a chain that is acyclic in the well-formed case. Traverse guards against
// cyclic input.
type Record struct {
	// Type is the exception type name, e.g. "ValueError" or
	// "sqlalchemy.exc.OperationalError".
	Type string
	// Message is the exception message.
	Message string
	// Frames is the call stack in the order supplied by the capturing
	// runtime, innermost call last.
	Frames []Frame
	// Cause is the exception this one was raised while handling, if any.
	Cause *Record
}
