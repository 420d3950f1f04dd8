// Package rewriter adds full-width/half-width twins to conversion candidates.
package rewriter

import (
	"log/slog"

	"japanesevariants/charform"
	"japanesevariants/describe"
	"japanesevariants/model"
	"japanesevariants/script"
)

// VariantsRewriter expands each variant-capable candidate with its twin in
// the other width, preferred width first, and labels both.
type VariantsRewriter struct {
	forms             *charform.Manager
	describer         *describe.Describer
	suggestionInPlace bool
	alternatives      map[script.Category]bool
	logger            *slog.Logger
}

// Option configures a VariantsRewriter.
type Option func(*VariantsRewriter)

// WithDescriber sets the label generator. The default uses English labels.
func WithDescriber(d *describe.Describer) Option {
	return func(r *VariantsRewriter) {
		if d != nil {
			r.describer = d
		}
	}
}

// WithSuggestionInPlace makes suggestion requests convert candidates to the
// preferred width instead of adding twins, keeping the short list short.
func WithSuggestionInPlace(on bool) Option {
	return func(r *VariantsRewriter) { r.suggestionInPlace = on }
}

// WithAlternatives lists categories whose candidates also get their
// non-preferred twin when they are already in the preferred width.
func WithAlternatives(categories ...script.Category) Option {
	return func(r *VariantsRewriter) {
		for _, c := range categories {
			if c.HasVariants() {
				r.alternatives[c] = true
			}
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *VariantsRewriter) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a rewriter reading preferences from forms.
func New(forms *charform.Manager, opts ...Option) *VariantsRewriter {
	r := &VariantsRewriter{
		forms:        forms,
		describer:    describe.New("en"),
		alternatives: map[script.Category]bool{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite mutates segs in place and reports whether any candidate was added
// or changed. Candidates are never removed or moved relative to each other.
func (r *VariantsRewriter) Rewrite(segs *model.Segments) bool {
	if segs == nil {
		return false
	}
	mode := describe.ModeFor(segs.RequestType)
	inPlace := r.suggestionInPlace && segs.RequestType == model.Suggestion
	modified := false
	for i, seg := range segs.Segments {
		var changed bool
		if inPlace {
			changed = r.convertSegment(seg, mode)
		} else {
			changed = r.expandSegment(seg, mode)
		}
		if changed {
			r.logger.Debug("rewrote segment", "index", i, "key", seg.Key, "candidates", seg.Len())
		}
		modified = modified || changed
	}
	return modified
}

// Learn records the width of a committed candidate as the preference for its
// category. Candidates marked NoLearning are ignored.
func (r *VariantsRewriter) Learn(c *model.Candidate) bool {
	if c == nil || c.Attributes.Has(model.NoLearning) {
		return false
	}
	return r.forms.GuessAndAddConversionRule(c.Value)
}

// Finish learns from the first candidate of every segment, the one the user
// committed, and returns the number of rules recorded.
func (r *VariantsRewriter) Finish(segs *model.Segments) int {
	if segs == nil {
		return 0
	}
	n := 0
	for _, seg := range segs.Segments {
		if seg.Len() > 0 && r.Learn(seg.Candidate(0)) {
			n++
		}
	}
	return n
}

// plan reports the candidate's script info and preferred width, or false if
// the candidate takes no part in width variation.
func (r *VariantsRewriter) plan(c *model.Candidate) (script.Info, script.Form, bool) {
	info := script.Inspect(c.Value)
	if c.Attributes.Has(model.NoVariantsExpansion) || !info.Category.HasVariants() {
		return info, script.FormUnknown, false
	}
	return info, r.forms.GetPreferredForm(info.Category), true
}

// labelPlatformDependent gives a platform-dependent candidate its warning
// label and reports whether the description changed.
func (r *VariantsRewriter) labelPlatformDependent(c *model.Candidate, info script.Info, mode describe.Mode) bool {
	if info.Category != script.PrivateUse {
		return false
	}
	before := c.Description
	r.describer.SetDescription(c, mode)
	return c.Description != before
}

func twin(c *model.Candidate, form script.Form) *model.Candidate {
	t := c.Clone()
	t.Value = script.Convert(c.Value, form)
	t.ContentValue = script.Convert(c.ContentValue, form)
	return t
}

// expandSegment rebuilds the candidate list from a snapshot, so inserted
// twins are never visited.
func (r *VariantsRewriter) expandSegment(seg *model.Segment, mode describe.Mode) bool {
	if seg.Len() == 0 {
		return false
	}
	seen := make(map[string]bool, seg.Len())
	for _, c := range seg.Candidates {
		seen[c.Value] = true
	}

	out := make([]*model.Candidate, 0, 2*seg.Len())
	modified := false
	for _, c := range seg.Candidates {
		info, preferred, ok := r.plan(c)
		if !ok {
			if r.labelPlatformDependent(c, info, mode) {
				modified = true
			}
			out = append(out, c)
			continue
		}

		if info.Form == preferred {
			out = append(out, c)
			if !r.alternatives[info.Category] {
				continue
			}
			alt := twin(c, preferred.Opposite())
			if alt.Value == c.Value || seen[alt.Value] {
				continue
			}
			seen[alt.Value] = true
			r.describer.SetDescription(c, mode)
			r.describer.SetDescription(alt, mode)
			out = append(out, alt)
			modified = true
			r.logger.Debug("added alternative", "value", alt.Value, "from", c.Value, "category", info.Category)
			continue
		}

		pref := twin(c, preferred)
		if pref.Value == c.Value || len(out) > 0 && out[len(out)-1].Value == pref.Value {
			out = append(out, c)
			continue
		}
		seen[pref.Value] = true
		r.describer.SetDescription(pref, mode)
		r.describer.SetDescription(c, mode)
		out = append(out, pref, c)
		modified = true
		r.logger.Debug("added variant", "value", pref.Value, "from", c.Value, "category", info.Category, "form", preferred)
	}
	seg.Candidates = out
	return modified
}

// convertSegment rewrites candidates to the preferred width without adding any.
func (r *VariantsRewriter) convertSegment(seg *model.Segment, mode describe.Mode) bool {
	modified := false
	for _, c := range seg.Candidates {
		info, preferred, ok := r.plan(c)
		if !ok {
			if r.labelPlatformDependent(c, info, mode) {
				modified = true
			}
			continue
		}
		if info.Form == preferred {
			continue
		}
		value := script.Convert(c.Value, preferred)
		if value == c.Value {
			continue
		}
		c.Value = value
		c.ContentValue = script.Convert(c.ContentValue, preferred)
		r.describer.SetDescription(c, mode)
		modified = true
	}
	return modified
}
