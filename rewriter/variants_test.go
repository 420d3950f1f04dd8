package rewriter

import (
	"strconv"
	"testing"

	"japanesevariants/charform"
	"japanesevariants/describe"
	"japanesevariants/model"
	"japanesevariants/script"

	"github.com/google/go-cmp/cmp"
)

// newSegments builds one segment holding a candidate per value.
func newSegments(rt model.RequestType, values ...string) *model.Segments {
	segs := &model.Segments{RequestType: rt}
	seg := segs.PushBackSegment()
	for _, v := range values {
		c := seg.AddCandidate()
		c.Key, c.ContentKey = v, v
		c.Value, c.ContentValue = v, v
	}
	return segs
}

func contentValues(seg *model.Segment) []string {
	out := make([]string, seg.Len())
	for i, c := range seg.Candidates {
		out[i] = c.ContentValue
	}
	return out
}

func descriptions(seg *model.Segment) []string {
	out := make([]string, seg.Len())
	for i, c := range seg.Candidates {
		out[i] = c.Description
	}
	return out
}

func checkValues(t *testing.T, seg *model.Segment, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, seg.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, contentValues(seg)); diff != "" {
		t.Errorf("content values mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteHiraganaUntouched(t *testing.T) {
	r := New(charform.New())
	segs := newSegments(model.Conversion, "あいう")
	if r.Rewrite(segs) {
		t.Error("Expected no rewrite for hiragana")
	}
	checkValues(t, segs.Segment(0), "あいう")
}

func TestRewriteDigitsFullWidth(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("012", script.FullWidth)
	r := New(forms)
	segs := newSegments(model.Conversion, "012")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite for digits")
	}
	seg := segs.Segment(0)
	checkValues(t, seg, "０１２", "012")
	if diff := cmp.Diff([]string{"[full] digit", "[half] digit"}, descriptions(seg)); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteRespectsNoVariantsExpansion(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("012", script.FullWidth)
	r := New(forms)
	segs := newSegments(model.Conversion, "012")
	segs.Segment(0).Candidate(0).Attributes = model.NewAttributes(model.NoVariantsExpansion)
	if r.Rewrite(segs) {
		t.Error("Expected no rewrite when expansion is suppressed")
	}
	if got := segs.Segment(0).Len(); got != 1 {
		t.Errorf("Expected 1 candidate, got %d", got)
	}
}

func TestRewriteAlphabetAndSymbol(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("abc", script.FullWidth)
	forms.SetCharacterForm("@", script.FullWidth)
	r := New(forms)

	segs := newSegments(model.Conversion, "Google")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite for Google")
	}
	checkValues(t, segs.Segment(0), "Ｇｏｏｇｌｅ", "Google")

	segs = newSegments(model.Conversion, "@")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite for @")
	}
	checkValues(t, segs.Segment(0), "＠", "@")
}

func TestRewriteKatakana(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("アイウ", script.FullWidth)
	r := New(forms)

	segs := newSegments(model.Conversion, "グーグル")
	if r.Rewrite(segs) {
		t.Error("Expected no rewrite for katakana already in the preferred width")
	}

	forms.AddConversionRule("アイウ", script.HalfWidth)
	segs = newSegments(model.Conversion, "グーグル")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite after learning half-width katakana")
	}
	checkValues(t, segs.Segment(0), "ｸﾞｰｸﾞﾙ", "グーグル")
	if diff := cmp.Diff([]string{"[half] katakana", "[full] katakana"}, descriptions(segs.Segment(0))); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteManyCandidates(t *testing.T) {
	r := New(charform.New())
	var values []string
	for i := 0; i < 10; i++ {
		values = append(values, strconv.Itoa(i), "ぐーぐる")
	}
	segs := newSegments(model.Conversion, values...)
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite")
	}
	seg := segs.Segment(0)
	if seg.Len() != 30 {
		t.Fatalf("Expected 30 candidates, got %d", seg.Len())
	}
	for i := 0; i < 10; i++ {
		half := strconv.Itoa(i)
		if got := seg.Candidate(3*i + 1).Value; got != half {
			t.Errorf("candidate %d: expected %q, got %q", 3*i+1, half, got)
		}
		if got := seg.Candidate(3 * i).Value; got != script.ToFullWidth(half) {
			t.Errorf("candidate %d: expected %q, got %q", 3*i, script.ToFullWidth(half), got)
		}
		if got := seg.Candidate(3*i + 2).Value; got != "ぐーぐる" {
			t.Errorf("candidate %d: expected ぐーぐる, got %q", 3*i+2, got)
		}
	}
}

func TestRewriteManyCandidatesHiraganaFirst(t *testing.T) {
	r := New(charform.New())
	var values []string
	for i := 0; i < 10; i++ {
		values = append(values, "ぐーぐる", strconv.Itoa(i))
	}
	segs := newSegments(model.Conversion, values...)
	r.Rewrite(segs)
	seg := segs.Segment(0)
	if seg.Len() != 30 {
		t.Fatalf("Expected 30 candidates, got %d", seg.Len())
	}
	for i := 0; i < 10; i++ {
		half := strconv.Itoa(i)
		want := []string{"ぐーぐる", script.ToFullWidth(half), half}
		got := []string{seg.Candidate(3 * i).Value, seg.Candidate(3*i + 1).Value, seg.Candidate(3*i + 2).Value}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("group %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRewriteForConversion(t *testing.T) {
	forms := charform.New()
	r := New(forms)

	segs := newSegments(model.Conversion, "abc")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite with baseline full width")
	}
	if got := forms.GetConversionCharacterForm("abc"); got != script.FullWidth {
		t.Errorf("Expected full, got %v", got)
	}
	checkValues(t, segs.Segment(0), "ａｂｃ", "abc")

	forms.SetCharacterForm("abc", script.HalfWidth)
	segs = newSegments(model.Conversion, "abc")
	if r.Rewrite(segs) {
		t.Error("Expected no rewrite when abc is already preferred")
	}
	checkValues(t, segs.Segment(0), "abc")
}

func TestRewriteWithAlternatives(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("abc", script.HalfWidth)
	r := New(forms, WithAlternatives(script.Alphabet, script.Hiragana))

	segs := newSegments(model.Conversion, "abc")
	if !r.Rewrite(segs) {
		t.Fatal("Expected alternative to be added")
	}
	checkValues(t, segs.Segment(0), "abc", "ａｂｃ")

	segs = newSegments(model.Conversion, "グーグル")
	if r.Rewrite(segs) {
		t.Error("Expected katakana without alternatives to stay alone")
	}
}

func TestRewriteForPrediction(t *testing.T) {
	r := New(charform.New())
	segs := newSegments(model.Prediction, "abc")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite")
	}
	seg := segs.Segment(0)
	checkValues(t, seg, "ａｂｃ", "abc")
	if diff := cmp.Diff([]string{"", ""}, descriptions(seg)); diff != "" {
		t.Errorf("Expected empty prediction labels (-want +got):\n%s", diff)
	}
}

func TestRewriteForSuggestion(t *testing.T) {
	forms := charform.New()

	segs := newSegments(model.Suggestion, "abc")
	if !New(forms).Rewrite(segs) {
		t.Fatal("Expected rewrite")
	}
	checkValues(t, segs.Segment(0), "ａｂｃ", "abc")

	r := New(forms, WithSuggestionInPlace(true))
	segs = newSegments(model.Suggestion, "abc")
	if !r.Rewrite(segs) {
		t.Fatal("Expected in-place rewrite")
	}
	checkValues(t, segs.Segment(0), "ａｂｃ")
	if got := segs.Segment(0).Candidate(0).Description; got != "[full] alphabet" {
		t.Errorf("Expected [full] alphabet, got %q", got)
	}

	forms.SetCharacterForm("abc", script.HalfWidth)
	segs = newSegments(model.Suggestion, "abc")
	if r.Rewrite(segs) {
		t.Error("Expected no change when already preferred")
	}
	checkValues(t, segs.Segment(0), "abc")
}

func TestRewriteIsIdempotent(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("ア", script.HalfWidth)
	for _, r := range []*VariantsRewriter{New(forms), New(forms, WithAlternatives(script.Digit))} {
		segs := newSegments(model.Conversion, "012", "abc", "グーグル", "あいう", "!?")
		if !r.Rewrite(segs) {
			t.Fatal("Expected first rewrite to change segments")
		}
		first := segs.Segment(0).Values()
		if r.Rewrite(segs) {
			t.Error("Expected second rewrite to be a no-op")
		}
		if diff := cmp.Diff(first, segs.Segment(0).Values()); diff != "" {
			t.Errorf("second rewrite changed values (-first +second):\n%s", diff)
		}
	}
}

func TestRewriteRuleIsCategoryKeyed(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("012", script.HalfWidth)
	r := New(forms)
	segs := newSegments(model.Conversion, "３４５")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite for full-width digits")
	}
	checkValues(t, segs.Segment(0), "345", "３４５")
}

func TestRewritePrivateUse(t *testing.T) {
	r := New(charform.New())
	for _, rt := range []model.RequestType{model.Conversion, model.Prediction, model.Suggestion, model.Transliteration} {
		for _, value := range []string{"A\uE000", "草\uE000剛", "草彅剛"} {
			segs := newSegments(rt, value)
			if !r.Rewrite(segs) {
				t.Errorf("%v %q: expected the label to be set", rt, value)
			}
			seg := segs.Segment(0)
			checkValues(t, seg, value)
			if got := seg.Candidate(0).Description; got != "<platform-dependent character>" {
				t.Errorf("%v %q: expected platform-dependent label, got %q", rt, value, got)
			}
			if r.Rewrite(segs) {
				t.Errorf("%v %q: expected second rewrite to be a no-op", rt, value)
			}
		}
	}
}

func TestRewritePrivateUseInPlaceSuggestion(t *testing.T) {
	r := New(charform.New(), WithSuggestionInPlace(true))
	segs := newSegments(model.Suggestion, "草彅剛")
	if !r.Rewrite(segs) {
		t.Fatal("Expected the label to be set")
	}
	if got := segs.Segment(0).Candidate(0).Description; got != "<platform-dependent character>" {
		t.Errorf("Expected platform-dependent label, got %q", got)
	}
}

func TestRewritePreferredTwinAlreadyLater(t *testing.T) {
	forms := charform.New()
	forms.SetCharacterForm("0", script.FullWidth)
	r := New(forms)
	segs := newSegments(model.Conversion, "1", "１")
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite to put the full-width twin first")
	}
	seg := segs.Segment(0)
	checkValues(t, seg, "１", "1", "１")
	if diff := cmp.Diff([]string{"[full] digit", "[half] digit", ""}, descriptions(seg)); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
	if r.Rewrite(segs) {
		t.Errorf("Expected second rewrite to be a no-op, got %v", seg.Values())
	}
	checkValues(t, seg, "１", "1", "１")
}

func TestRewriteKeepsOtherFields(t *testing.T) {
	r := New(charform.New())
	segs := &model.Segments{}
	seg := segs.PushBackSegment()
	seg.Key = "ぜろ"
	c := seg.AddCandidate()
	c.Key, c.ContentKey = "ぜろいち", "ぜろいち"
	c.Value, c.ContentValue = "01です", "01"
	c.Attributes = model.NewAttributes(model.NoLearning)

	r.Rewrite(segs)
	if seg.Len() != 1 {
		t.Fatalf("Expected mixed value to stay alone, got %v", seg.Values())
	}

	c.Value = "01"
	r.Rewrite(segs)
	if seg.Len() != 2 {
		t.Fatalf("Expected twin, got %v", seg.Values())
	}
	tw := seg.Candidate(0)
	if tw == c {
		t.Fatal("Expected a new candidate in front")
	}
	want := model.Candidate{
		Key:          "ぜろいち",
		ContentKey:   "ぜろいち",
		Value:        "０１",
		ContentValue: "０１",
		Description:  "[full] digit",
		Attributes:   model.NewAttributes(model.NoLearning),
	}
	if diff := cmp.Diff(want, *tw); diff != "" {
		t.Errorf("twin mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteSegmentsIndependently(t *testing.T) {
	r := New(charform.New(), WithDescriber(describe.New("ja")))
	segs := &model.Segments{}
	for _, v := range []string{"abc", "あ", "7"} {
		seg := segs.PushBackSegment()
		seg.Key = v
		*seg.AddCandidate() = *model.NewCandidate(v, v)
	}
	segs.PushBackSegment()
	if !r.Rewrite(segs) {
		t.Fatal("Expected rewrite")
	}
	got := [][]string{}
	for _, seg := range segs.Segments {
		got = append(got, seg.Values())
	}
	want := [][]string{{"ａｂｃ", "abc"}, {"あ"}, {"７", "7"}, {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if d := segs.Segment(2).Candidate(1).Description; d != "[半] 数字" {
		t.Errorf("Expected Japanese digit label, got %q", d)
	}
}

func TestRewriteNil(t *testing.T) {
	if New(charform.New()).Rewrite(nil) {
		t.Error("Expected false for nil segments")
	}
}

func TestLearnSkipsNoLearning(t *testing.T) {
	forms := charform.New()
	r := New(forms)

	reading := model.NewCandidate("ぐーぐる", "ｸﾞｰｸﾞﾙ")
	reading.Attributes = model.NewAttributes(model.NoLearning)
	if r.Learn(reading) {
		t.Error("Expected NoLearning candidate to be ignored")
	}
	if got := forms.GetPreferredForm(script.Katakana); got != script.FullWidth {
		t.Errorf("Expected katakana to stay full, got %v", got)
	}

	if !r.Learn(model.NewCandidate("ぐーぐる", "ｸﾞｰｸﾞﾙ")) {
		t.Error("Expected learnable candidate to record a rule")
	}
	if got := forms.GetPreferredForm(script.Katakana); got != script.HalfWidth {
		t.Errorf("Expected katakana to become half, got %v", got)
	}
}

func TestFinishLearnsCommittedCandidates(t *testing.T) {
	forms := charform.New()
	r := New(forms)
	segs := &model.Segments{}
	segs.PushBackSegment().Candidates = []*model.Candidate{model.NewCandidate("", "abc"), model.NewCandidate("", "ＡＢＣ")}
	first := model.NewCandidate("", "123")
	first.Attributes = model.NewAttributes(model.NoLearning)
	segs.PushBackSegment().Candidates = []*model.Candidate{first}
	segs.PushBackSegment()

	if got := r.Finish(segs); got != 1 {
		t.Errorf("Expected 1 learned rule, got %d", got)
	}
	want := charform.Forms{script.Alphabet: script.HalfWidth}
	if diff := cmp.Diff(want, forms.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if r.Finish(nil) != 0 {
		t.Error("Expected nil segments to learn nothing")
	}
}
