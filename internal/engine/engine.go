// Package engine wires configuration, rule evaluation, chain traversal, and
// rendering into a single reusable pipeline. The engine holds its compiled
// state behind an atomic pointer so a config reload swaps in atomically
// while renders are in flight.
package engine

import (
	"strings"
	"sync/atomic"

	"github.com/hueify/hueify/internal/config"
	"github.com/hueify/hueify/internal/logging"
	"github.com/hueify/hueify/internal/render"
	"github.com/hueify/hueify/internal/rules"
	"github.com/hueify/hueify/internal/trace"
)

// state is one immutable compiled configuration
type state struct {
	set      *rules.Set
	renderer *render.Renderer
	maxDepth int
}

// Engine renders log records and their exception chains according to the
// current configuration. Safe for concurrent use; Reload may be called
// concurrently with Render.
type Engine struct {
	current atomic.Pointer[state]
	logger  *logging.Logger
}

// New builds an engine from a validated config. Pattern compilation happens
// here; an invalid pattern fails with a ConfigError naming the rule index.
func New(cfg *config.Config, logger *logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	st, err := compile(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{logger: logger.WithComponent("engine")}
	e.current.Store(st)
	e.logger.Debug("engine ready", "rules", st.set.Len(), "max_depth", st.maxDepth)
	return e, nil
}

// Reload replaces the engine's compiled state. On error the previous state
// stays active.
func (e *Engine) Reload(cfg *config.Config) error {
	st, err := compile(cfg)
	if err != nil {
		e.logger.Warn("reload rejected", "error", err)
		return err
	}
	e.current.Store(st)
	e.logger.Info("configuration applied", "rules", st.set.Len(), "max_depth", st.maxDepth)
	return nil
}

// Render filters and renders a record's exception chain. A nil root still
// renders the metadata header; rendering never fails, malformed input
// degrades to truncation markers in the output.
func (e *Engine) Render(root *trace.Record, meta render.Metadata) []render.Line {
	st := e.current.Load()

	chain := trace.Traverse(root, st.set, st.maxDepth)
	if chain.Truncated() {
		e.logger.Warn("chain truncated", "steps", len(chain.Steps), "error", chain.Err)
	}

	return st.renderer.Render(chain, meta)
}

// compile turns a config into immutable engine state
func compile(cfg *config.Config) (*state, error) {
	specs := make([]rules.Rule, 0, len(cfg.Rules))
	for _, spec := range cfg.Rules {
		action, err := rules.ParseAction(spec.Action)
		if err != nil {
			return nil, err
		}
		kind, err := rules.ParseMatchKind(spec.Match)
		if err != nil {
			return nil, err
		}
		specs = append(specs, rules.Rule{
			Pattern: spec.Pattern,
			Kind:    kind,
			Action:  action,
		})
	}

	set, err := rules.NewSet(specs)
	if err != nil {
		return nil, err
	}

	levelTags := make(map[string]render.Tag, len(cfg.Colors.Levels))
	for level, name := range cfg.Colors.Levels {
		tag, err := render.ParseTag(name)
		if err != nil {
			return nil, err
		}
		levelTags[strings.ToLower(level)] = tag
	}

	return &state{
		set: set,
		renderer: render.New(render.Options{
			LevelTags:  levelTags,
			TimeFormat: cfg.Render.TimeFormat,
		}),
		maxDepth: cfg.Trace.MaxChainDepth,
	}, nil
}
