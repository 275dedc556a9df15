// Package capture decodes serialized log records and exception chains from
// JSON. This is the CLI's input format: a record envelope with optional log
// metadata and a nested cause chain, as emitted by an application's
// exception hook.
package capture

import (
	"encoding/json"
	"io"
	"time"

	"github.com/hueify/hueify/internal/errors"
	"github.com/hueify/hueify/internal/render"
	"github.com/hueify/hueify/internal/trace"
)

// Envelope is the top-level JSON document: log record metadata plus the
// captured exception chain. Every field is optional; a bare trace with no
// metadata renders without a header line.
type Envelope struct {
	Time    string         `json:"time,omitempty"`
	Level   string         `json:"level,omitempty"`
	Message string         `json:"message,omitempty"`
	Trace   *capturedTrace `json:"trace,omitempty"`
}

// capturedTrace mirrors trace.Record in the wire format
type capturedTrace struct {
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	Frames  []capturedFrame `json:"frames,omitempty"`
	Cause   *capturedTrace  `json:"cause,omitempty"`
}

// capturedFrame mirrors trace.Frame in the wire format
type capturedFrame struct {
	Location string `json:"location,omitempty"`
	Function string `json:"function,omitempty"`
	Line     int    `json:"line,omitempty"`
	Source   string `json:"source,omitempty"`
}

// timeLayouts are tried in order when parsing the envelope timestamp.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
}

// Decode reads one JSON envelope and converts it to render metadata plus
// the root of the exception chain. The returned record is nil when the
// envelope carries no trace.
func Decode(r io.Reader) (render.Metadata, *trace.Record, error) {
	var env Envelope
	dec := json.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return render.Metadata{}, nil, errors.Wrap(err, "decoding trace input")
	}

	meta := render.Metadata{
		Level:   env.Level,
		Message: env.Message,
	}
	if env.Time != "" {
		ts, err := parseTime(env.Time)
		if err != nil {
			return render.Metadata{}, nil, err
		}
		meta.Time = ts
	}

	root, err := convertTrace(env.Trace)
	if err != nil {
		return render.Metadata{}, nil, err
	}
	return meta, root, nil
}

// parseTime accepts the common timestamp layouts found in log output
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.NewConfigError("unrecognized timestamp "+s, nil).WithField("time")
}

// convertTrace maps the wire representation onto trace records. A trace
// node with no type, message, and frames is rejected rather than rendered
// as an empty block.
func convertTrace(ct *capturedTrace) (*trace.Record, error) {
	if ct == nil {
		return nil, nil
	}
	if ct.Type == "" && ct.Message == "" && len(ct.Frames) == 0 {
		return nil, errors.NewTraceError("decoding trace input", errors.ErrEmptyRecord)
	}

	rec := &trace.Record{
		Type:    ct.Type,
		Message: ct.Message,
	}
	if len(ct.Frames) > 0 {
		rec.Frames = make([]trace.Frame, len(ct.Frames))
		for i, f := range ct.Frames {
			rec.Frames[i] = trace.Frame{
				Location: f.Location,
				Function: f.Function,
				Line:     f.Line,
				Source:   f.Source,
			}
		}
	}

	cause, err := convertTrace(ct.Cause)
	if err != nil {
		return nil, err
	}
	rec.Cause = cause
	return rec, nil
}
