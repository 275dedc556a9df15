// Package testutil provides testing utilities for hueify tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hueify/hueify/internal/trace"
)

// Frame builds a frame with the given location and function. The line
// number defaults to 1.
func Frame(location, function string) trace.Frame {
	return trace.Frame{Location: location, Function: function, Line: 1}
}

// Frames builds a frame list from location strings. Function names are
// derived from the location base, which is enough for filtering tests.
func Frames(locations ...string) []trace.Frame {
	frames := make([]trace.Frame, len(locations))
	for i, loc := range locations {
		frames[i] = trace.Frame{Location: loc, Function: "fn", Line: i + 1}
	}
	return frames
}

// Record builds a single trace record
func Record(typeName, message string, frames ...trace.Frame) *trace.Record {
	return &trace.Record{Type: typeName, Message: message, Frames: frames}
}

// Chain links records into a cause chain. The first argument is the
// outermost record; each following record becomes the cause of the one
// before it. Returns the outermost record.
func Chain(records ...*trace.Record) *trace.Record {
	if len(records) == 0 {
		return nil
	}
	for i := 0; i < len(records)-1; i++ {
		records[i].Cause = records[i+1]
	}
	return records[0]
}

// DeepChain builds a linear cause chain of the given length, with record
// types "E0", "E1", ... outermost first.
func DeepChain(length int) *trace.Record {
	var root, prev *trace.Record
	for i := 0; i < length; i++ {
		rec := &trace.Record{
			Type:    fmt.Sprintf("E%d", i),
			Message: "level",
			Frames:  Frames("app/layer.py"),
		}
		if prev == nil {
			root = rec
		} else {
			prev.Cause = rec
		}
		prev = rec
	}
	return root
}

// WriteFile writes content to a file under dir, creating parent
// directories, and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return path
}
