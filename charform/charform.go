// Package charform remembers which width form the user prefers for each
// script category.
//
// Preferences resolve through three layers, highest first: learned history,
// explicit rules, baseline. A Manager is not safe for concurrent use; hosts
// sharing one across goroutines must serialize access themselves.
package charform

import (
	"log/slog"
	"maps"

	"japanesevariants/script"
)

// Forms maps a category to a width form.
type Forms map[script.Category]script.Form

// DefaultBaseline is the built-in layer: every category with variants
// prefers full width.
func DefaultBaseline() Forms {
	return Forms{
		script.Alphabet: script.FullWidth,
		script.Digit:    script.FullWidth,
		script.Symbol:   script.FullWidth,
		script.Katakana: script.FullWidth,
	}
}

// Manager is the form preference store.
type Manager struct {
	baseline Forms
	rules    Forms
	history  Forms
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithBaseline overrides entries of the built-in layer.
func WithBaseline(forms Forms) Option {
	return func(m *Manager) {
		for c, f := range forms {
			if c.HasVariants() && f != script.FormUnknown {
				m.baseline[c] = f
			}
		}
	}
}

// WithLogger sets the logger used for rule changes.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a Manager holding only the baseline layer.
func New(opts ...Option) *Manager {
	m := &Manager{
		baseline: DefaultBaseline(),
		rules:    Forms{},
		history:  Forms{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetDefaultRule drops explicit rules and learned history.
func (m *Manager) SetDefaultRule() {
	clear(m.rules)
	clear(m.history)
	m.logger.Debug("reset form rules to baseline")
}

// SetCharacterForm sets the explicit rule for the category of sample.
func (m *Manager) SetCharacterForm(sample string, form script.Form) {
	if c, ok := m.target(sample, form); ok {
		m.rules[c] = form
		m.logger.Debug("set character form", "category", c, "form", form)
	}
}

// AddConversionRule records a learned preference for the category of sample.
func (m *Manager) AddConversionRule(sample string, form script.Form) {
	if c, ok := m.target(sample, form); ok {
		m.history[c] = form
		m.logger.Debug("add conversion rule", "category", c, "form", form)
	}
}

// GuessAndAddConversionRule learns the width a selected value is written in.
// It reports whether a rule was recorded.
func (m *Manager) GuessAndAddConversionRule(value string) bool {
	info := script.Inspect(value)
	if !info.Category.HasVariants() || info.Form == script.FormUnknown {
		return false
	}
	m.history[info.Category] = info.Form
	m.logger.Debug("learned conversion rule", "value", value, "category", info.Category, "form", info.Form)
	return true
}

// ClearHistory drops learned preferences; explicit rules survive.
func (m *Manager) ClearHistory() {
	clear(m.history)
	m.logger.Debug("cleared form history")
}

// GetPreferredForm resolves the preferred width of c. Categories no layer
// knows about resolve to full width.
func (m *Manager) GetPreferredForm(c script.Category) script.Form {
	for _, layer := range []Forms{m.history, m.rules, m.baseline} {
		if f, ok := layer[c]; ok {
			return f
		}
	}
	return script.FullWidth
}

// GetConversionCharacterForm resolves the preferred width for the category of text.
func (m *Manager) GetConversionCharacterForm(text string) script.Form {
	return m.GetPreferredForm(script.Classify(text))
}

// History returns a copy of the learned layer.
func (m *Manager) History() Forms {
	return maps.Clone(m.history)
}

// RestoreHistory replaces the learned layer, skipping entries that could not
// have been learned.
func (m *Manager) RestoreHistory(h Forms) {
	restore(m.history, h)
}

// Rules returns a copy of the explicit layer.
func (m *Manager) Rules() Forms {
	return maps.Clone(m.rules)
}

// RestoreRules replaces the explicit layer.
func (m *Manager) RestoreRules(r Forms) {
	restore(m.rules, r)
}

func restore(dst, src Forms) {
	clear(dst)
	for c, f := range src {
		if c.HasVariants() && f != script.FormUnknown {
			dst[c] = f
		}
	}
}

func (m *Manager) target(sample string, form script.Form) (script.Category, bool) {
	c := script.Classify(sample)
	if !c.HasVariants() || form == script.FormUnknown {
		m.logger.Debug("ignored form rule", "sample", sample, "category", c, "form", form)
		return c, false
	}
	return c, true
}
