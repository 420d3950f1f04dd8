package describe

import (
	"testing"

	"japanesevariants/model"
)

func TestSetDescriptionForCandidate(t *testing.T) {
	d := New("en")
	tests := []struct {
		value string
		want  string
	}{
		{"HalfASCII", "[half] alphabet"},
		{"Half ASCII", "[half] alphabet"},
		{"Half!ASCII!", "[half] alphabet"},
		{"CD-ROM", "[half] alphabet"},
		{"コギト・エルゴ・スム", "[full] katakana"},
		{"ｺｷﾞﾄ", "[half] katakana"},
		{"!@#", "[half]"},
		{"「ＡＢＣ」", "[full] alphabet"},
		{"012", "[half] digit"},
		{"０１２", "[full] digit"},
		{"草\uE000剛", "<platform-dependent character>"},
		{"あいう", ""},
		{"漢字", ""},
		{"食べる", ""},
	}
	for _, tt := range tests {
		c := model.NewCandidate("", tt.value)
		d.SetDescriptionForCandidate(c)
		if c.Description != tt.want {
			t.Errorf("description of %q: expected %q, got %q", tt.value, tt.want, c.Description)
		}
	}
}

func TestSetDescriptionForTransliterationMatchesCandidate(t *testing.T) {
	d := New("en")
	for _, value := range []string{"HalfASCII", "!@#", "「ＡＢＣ」", "０１２", "\uE000"} {
		a := model.NewCandidate("", value)
		b := model.NewCandidate("", value)
		d.SetDescriptionForCandidate(a)
		d.SetDescriptionForTransliteration(b)
		if a.Description != b.Description {
			t.Errorf("%q: candidate label %q differs from transliteration label %q", value, a.Description, b.Description)
		}
	}
}

func TestSetDescriptionForPrediction(t *testing.T) {
	d := New("en")
	for _, value := range []string{"HalfASCII", "Half ASCII", "Half!ASCII!", "CD-ROM", "!@#", "「ＡＢＣ」"} {
		c := model.NewCandidate("", value)
		c.Description = "stale"
		d.SetDescriptionForPrediction(c)
		if c.Description != "" {
			t.Errorf("prediction label of %q: expected empty, got %q", value, c.Description)
		}
	}
	c := model.NewCandidate("", "草\uE000剛")
	d.SetDescriptionForPrediction(c)
	if c.Description != "<platform-dependent character>" {
		t.Errorf("Expected platform-dependent label in prediction, got %q", c.Description)
	}
}

func TestJapaneseLabels(t *testing.T) {
	d := New("ja-JP")
	tests := []struct {
		value string
		want  string
	}{
		{"HalfASCII", "[半] アルファベット"},
		{"コギト・エルゴ・スム", "[全] カタカナ"},
		{"!@#", "[半]"},
		{"「ＡＢＣ」", "[全] アルファベット"},
		{"\uE000", "<機種依存文字>"},
	}
	for _, tt := range tests {
		if got := d.Describe(tt.value, Full); got != tt.want {
			t.Errorf("Describe(%q): expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestNonJISLabelInEveryMode(t *testing.T) {
	d := New("ja")
	for name, set := range map[string]func(*model.Candidate){
		"candidate":       d.SetDescriptionForCandidate,
		"transliteration": d.SetDescriptionForTransliteration,
		"prediction":      d.SetDescriptionForPrediction,
	} {
		c := model.NewCandidate("くさなぎつよし", "草彅剛")
		set(c)
		if c.Description != "<機種依存文字>" {
			t.Errorf("%s: Expected <機種依存文字>, got %q", name, c.Description)
		}
	}
}

func TestNewFallsBackToEnglish(t *testing.T) {
	for _, lang := range []string{"", "not a tag!", "fr"} {
		if got := New(lang).Describe("abc", Full); got != "[half] alphabet" {
			t.Errorf("New(%q): expected English labels, got %q", lang, got)
		}
	}
}

func TestModeFor(t *testing.T) {
	want := map[model.RequestType]Mode{
		model.Conversion:      Full,
		model.Suggestion:      Full,
		model.Prediction:      Prediction,
		model.Transliteration: Transliteration,
	}
	for rt, m := range want {
		if got := ModeFor(rt); got != m {
			t.Errorf("ModeFor(%v): expected %v, got %v", rt, m, got)
		}
	}
}
