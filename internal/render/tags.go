package render

import (
	"fmt"

	"github.com/hueify/hueify/internal/errors"
)

// Tag is an abstract style marker attached to a rendered text segment.
// Tags carry no escape sequences; the colorterm resolver maps them to
// terminal styling or strips them for non-terminal output.
type Tag string

const (
	// TagDefault is unstyled text.
	TagDefault Tag = "default"
	// TagError styles error-level headers and the final exception line.
	TagError Tag = "error"
	// TagWarning styles warning-level headers and truncation placeholders.
	TagWarning Tag = "warning"
	// TagInfo styles info-level headers.
	TagInfo Tag = "info"
	// TagMuted styles timestamps, connectors and elision summaries.
	TagMuted Tag = "muted"
	// TagLocation styles the directory part of a frame location.
	TagLocation Tag = "location"
	// TagLocationFile styles the basename part of a frame location.
	TagLocationFile Tag = "location-file"
	// TagSymbol styles the frame's function or method name.
	TagSymbol Tag = "symbol"
	// TagLineNo styles the frame's line number.
	TagLineNo Tag = "lineno"
	// TagSource styles the optional source-line text under a frame.
	TagSource Tag = "source"
)

// knownTags is the closed set of tags the renderer emits.
var knownTags = map[Tag]bool{
	TagDefault:      true,
	TagError:        true,
	TagWarning:      true,
	TagInfo:         true,
	TagMuted:        true,
	TagLocation:     true,
	TagLocationFile: true,
	TagSymbol:       true,
	TagLineNo:       true,
	TagSource:       true,
}

// ParseTag validates a tag name from configuration. Unknown names fail with
// a ConfigError so a typo in the level-color mapping surfaces at load time.
func ParseTag(s string) (Tag, error) {
	tag := Tag(s)
	if !knownTags[tag] {
		return TagDefault, errors.NewConfigError(fmt.Sprintf("tag %q", s), errors.ErrUnknownTag)
	}
	return tag, nil
}

// DefaultLevelTags returns the default mapping from log level names
// (lowercase) to color tags.
func DefaultLevelTags() map[string]Tag {
	return map[string]Tag{
		"debug":    TagMuted,
		"info":     TagInfo,
		"warn":     TagWarning,
		"warning":  TagWarning,
		"error":    TagError,
		"critical": TagError,
	}
}
