// Package render turns a traversed exception chain plus log record metadata
// into styled text segments. Rendering is pure: it produces a value, writes
// nothing, and is a total function over well-formed input. The colorterm
// resolver is responsible for turning segments into bytes.
package render

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/hueify/hueify/internal/trace"
)

// tracebackHeader matches the conventional presentation of the source
// ecosystem this renderer mirrors.
const tracebackHeader = "Traceback (most recent call last):"

// causeConnector separates chained exception blocks.
const causeConnector = "The above exception was the direct cause of the following exception:"

// truncatedPlaceholder marks where malformed input cut the output short.
const truncatedPlaceholder = "trace truncated"

// Segment is the atomic output unit: a run of text with one style tag.
type Segment struct {
	Text string
	Tag  Tag
}

// Line is one logical output line.
type Line []Segment

// String returns the line's text with tags stripped.
func (l Line) String() string {
	var b strings.Builder
	for _, seg := range l {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Metadata is the log record the trace belongs to. The zero value renders
// no header line, for callers formatting a bare exception.
type Metadata struct {
	Time    time.Time
	Level   string
	Message string
}

// Options configures a Renderer.
type Options struct {
	// LevelTags maps lowercase level names to color tags. Nil selects
	// DefaultLevelTags.
	LevelTags map[string]Tag
	// TimeFormat is the header timestamp layout. Empty selects time.DateTime.
	TimeFormat string
}

// Renderer renders traversed chains to styled lines. It is immutable and
// safe for concurrent use.
type Renderer struct {
	levelTags  map[string]Tag
	timeFormat string
}

// New creates a Renderer with the given options.
func New(opts Options) *Renderer {
	levelTags := opts.LevelTags
	if levelTags == nil {
		levelTags = DefaultLevelTags()
	}
	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		timeFormat = time.DateTime
	}
	return &Renderer{levelTags: levelTags, timeFormat: timeFormat}
}

// Render produces the full styled rendering of a log record and its
// exception chain. Output is built fresh on every call and identical for
// identical input.
func (r *Renderer) Render(chain trace.Chain, meta Metadata) []Line {
	var lines []Line

	if header, ok := r.headerLine(meta); ok {
		lines = append(lines, header)
	}

	// Chain-level truncation happened at the cause end, which is rendered
	// first, so the placeholder leads the trace.
	if chain.Err != nil {
		lines = append(lines, Line{{Text: truncatedPlaceholder, Tag: TagWarning}})
	}

	for i, step := range chain.Steps {
		if i > 0 {
			lines = append(lines,
				Line{},
				Line{{Text: causeConnector, Tag: TagMuted}},
				Line{},
			)
		}
		lines = append(lines, r.stepLines(step)...)
	}

	return lines
}

// headerLine builds the log record header: timestamp, level, message.
func (r *Renderer) headerLine(meta Metadata) (Line, bool) {
	if meta.Time.IsZero() && meta.Level == "" && meta.Message == "" {
		return nil, false
	}

	var line Line
	if !meta.Time.IsZero() {
		line = append(line, Segment{Text: meta.Time.Format(r.timeFormat), Tag: TagMuted})
	}
	if meta.Level != "" {
		if len(line) > 0 {
			line = append(line, Segment{Text: " ", Tag: TagDefault})
		}
		line = append(line, Segment{Text: strings.ToUpper(meta.Level), Tag: r.levelTag(meta.Level)})
	}
	if meta.Message != "" {
		if len(line) > 0 {
			line = append(line, Segment{Text: " ", Tag: TagDefault})
		}
		line = append(line, Segment{Text: meta.Message, Tag: TagDefault})
	}
	return line, true
}

// levelTag resolves the configured tag for a level name, defaulting to
// unstyled for unmapped levels.
func (r *Renderer) levelTag(level string) Tag {
	if tag, ok := r.levelTags[strings.ToLower(level)]; ok {
		return tag
	}
	return TagDefault
}

// stepLines renders one exception block: traceback header, frames and
// elision summaries, an optional truncation placeholder, and the final
// type-and-message line.
func (r *Renderer) stepLines(step trace.Step) []Line {
	lines := []Line{
		{{Text: tracebackHeader, Tag: TagDefault}},
	}

	for _, el := range step.Elements {
		switch e := el.(type) {
		case trace.KeptFrame:
			lines = append(lines, frameLines(e.Frame)...)
		case trace.ElisionSpan:
			lines = append(lines, Line{
				{Text: "  " + elisionText(e.Count), Tag: TagMuted},
			})
		}
	}

	if step.Err != nil {
		lines = append(lines, Line{{Text: "  " + truncatedPlaceholder, Tag: TagWarning}})
	}

	lines = append(lines, exceptionLine(step.Record))
	return lines
}

// frameLines renders one kept frame: the location line and, when captured,
// the source-line text beneath it.
func frameLines(f trace.Frame) []Line {
	line := Line{{Text: `  File "`, Tag: TagDefault}}

	dir, base := path.Split(f.Location)
	if dir != "" {
		line = append(line, Segment{Text: dir, Tag: TagLocation})
	}
	line = append(line,
		Segment{Text: base, Tag: TagLocationFile},
		Segment{Text: `"`, Tag: TagDefault},
	)

	if f.Line > 0 {
		line = append(line,
			Segment{Text: ", line ", Tag: TagDefault},
			Segment{Text: fmt.Sprintf("%d", f.Line), Tag: TagLineNo},
		)
	}
	if f.Function != "" {
		line = append(line,
			Segment{Text: ", in ", Tag: TagDefault},
			Segment{Text: f.Function, Tag: TagSymbol},
		)
	}

	lines := []Line{line}
	if f.Source != "" {
		lines = append(lines, Line{
			{Text: "    " + strings.TrimSpace(f.Source), Tag: TagSource},
		})
	}
	return lines
}

// elisionText formats the summary for a run of hidden frames. The count is
// always stated, even for a single frame.
func elisionText(count int) string {
	if count == 1 {
		return "1 frame hidden"
	}
	return fmt.Sprintf("%d frames hidden", count)
}

// exceptionLine renders the final "Type: message" line of a block. The
// source ecosystem's "builtins." prefix is stripped from type names.
func exceptionLine(rec *trace.Record) Line {
	typeName := strings.TrimPrefix(rec.Type, "builtins.")
	if typeName == "" {
		typeName = "<unknown>"
	}

	text := typeName
	if rec.Message != "" {
		text += ": " + rec.Message
	}
	return Line{{Text: text, Tag: TagError}}
}
