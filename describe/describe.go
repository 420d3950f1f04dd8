// Package describe builds the short labels shown next to candidates, such as
// "[half] alphabet" or "<platform-dependent character>".
package describe

import (
	"japanesevariants/model"
	"japanesevariants/script"

	"golang.org/x/text/language"
)

// Mode selects how much labeling a request gets.
type Mode int

const (
	// Full labels every variant-capable candidate.
	Full Mode = iota
	// Transliteration uses the same rules as Full.
	Transliteration
	// Prediction only keeps the platform-dependent warning.
	Prediction
)

// ModeFor maps a request type to its labeling mode.
func ModeFor(rt model.RequestType) Mode {
	switch rt {
	case model.Prediction:
		return Prediction
	case model.Transliteration:
		return Transliteration
	}
	return Full
}

// Labels is one language's label vocabulary.
type Labels struct {
	Half              string
	Full              string
	Names             map[script.Category]string
	PlatformDependent string
}

// English is the default label set.
var English = Labels{
	Half: "half",
	Full: "full",
	Names: map[script.Category]string{
		script.Alphabet: "alphabet",
		script.Digit:    "digit",
		script.Katakana: "katakana",
	},
	PlatformDependent: "<platform-dependent character>",
}

// Japanese is the label set for ja locales.
var Japanese = Labels{
	Half: "半",
	Full: "全",
	Names: map[script.Category]string{
		script.Alphabet: "アルファベット",
		script.Digit:    "数字",
		script.Katakana: "カタカナ",
	},
	PlatformDependent: "<機種依存文字>",
}

var (
	supported = []language.Tag{language.English, language.Japanese}
	matcher   = language.NewMatcher(supported)
	bundles   = []Labels{English, Japanese}
)

// Describer labels candidates in one language.
type Describer struct {
	labels Labels
}

// New picks the label set closest to lang (a BCP 47 tag). Unparseable tags
// fall back to English.
func New(lang string) *Describer {
	tag, err := language.Parse(lang)
	if err != nil {
		return &Describer{labels: English}
	}
	_, idx, _ := matcher.Match(tag)
	return &Describer{labels: bundles[idx]}
}

// NewWithLabels returns a Describer using a custom vocabulary.
func NewWithLabels(l Labels) *Describer {
	return &Describer{labels: l}
}

// Describe returns the label for value in mode. It reflects the width value
// is written in, not the preferred one.
func (d *Describer) Describe(value string, mode Mode) string {
	info := script.Inspect(value)
	if info.Category == script.PrivateUse {
		return d.labels.PlatformDependent
	}
	if mode == Prediction || !info.Category.HasVariants() {
		return ""
	}
	var tag string
	switch info.Form {
	case script.FullWidth:
		tag = d.labels.Full
	case script.HalfWidth:
		tag = d.labels.Half
	default:
		return ""
	}
	label := "[" + tag + "]"
	if name := d.labels.Names[info.Category]; name != "" {
		label += " " + name
	}
	return label
}

// SetDescription overwrites c.Description with the label for c.Value.
func (d *Describer) SetDescription(c *model.Candidate, mode Mode) {
	c.Description = d.Describe(c.Value, mode)
}

// SetDescriptionForCandidate labels c for a conversion request.
func (d *Describer) SetDescriptionForCandidate(c *model.Candidate) {
	d.SetDescription(c, Full)
}

// SetDescriptionForTransliteration labels c for a transliteration request.
func (d *Describer) SetDescriptionForTransliteration(c *model.Candidate) {
	d.SetDescription(c, Transliteration)
}

// SetDescriptionForPrediction labels c for a prediction request. Only the
// platform-dependent warning survives.
func (d *Describer) SetDescriptionForPrediction(c *model.Candidate) {
	d.SetDescription(c, Prediction)
}
