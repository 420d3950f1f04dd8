// Package tokenize turns raw text into candidate segments with kagome. It
// stands in for a real conversion engine when driving the rewriter from the
// command line.
package tokenize

import (
	"context"
	"fmt"
	"strings"

	"japanesevariants/model"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token represents a token / morpheme produced by the tokenizer.
type Token = model.Token

// Tokenizer wraps a kagome tokenizer built on one system dictionary.
type Tokenizer struct {
	kg   *tokenizer.Tokenizer
	mode tokenizer.TokenizeMode
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithMode selects the kagome split mode. The default is tokenizer.Normal.
func WithMode(m tokenizer.TokenizeMode) Option {
	return func(t *Tokenizer) { t.mode = m }
}

// ParseMode maps "normal", "search" or "extended" to a kagome split mode.
func ParseMode(s string) (tokenizer.TokenizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return tokenizer.Normal, nil
	case "search":
		return tokenizer.Search, nil
	case "extended":
		return tokenizer.Extended, nil
	}
	return tokenizer.Normal, fmt.Errorf("unknown split mode %q", s)
}

func loadDict(name string) (*dict.Dict, error) {
	switch name {
	case "", "ipa":
		return ipa.Dict(), nil
	case "uni":
		return uni.Dict(), nil
	}
	return nil, fmt.Errorf("unknown dictionary %q", name)
}

// New builds a Tokenizer on the named dictionary ("ipa" or "uni").
func New(dictName string, opts ...Option) (*Tokenizer, error) {
	d, err := loadDict(dictName)
	if err != nil {
		return nil, err
	}
	kg, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init kagome: %w", err)
	}
	t := &Tokenizer{kg: kg, mode: tokenizer.Normal}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Tokenize uses kagome to produce tokens for the input text.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return convertKagomeTokens(t.kg.Analyze(text, t.mode)), nil
}

func convertKagomeTokens(ktoks []tokenizer.Token) []Token {
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		lemma, _ := kt.BaseForm()
		if lemma == "" || lemma == "*" {
			lemma = kt.Surface
		}
		reading, _ := kt.Reading()
		if reading == "*" {
			reading = ""
		}
		pron, _ := kt.Pronunciation()
		if pron == "*" {
			pron = ""
		}
		out = append(out, Token{
			Text:          kt.Surface,
			Lemma:         lemma,
			POS:           strings.Join(kt.POS(), ","),
			Start:         kt.Start,
			End:           kt.End,
			Reading:       reading,
			Pronunciation: pron,
		})
	}
	return out
}

// katakanaToHiragana converts katakana to hiragana for segment keys.
func katakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// BuildSegments makes one segment per token. Each segment lists the surface
// form first, then the katakana and hiragana readings when they differ.
// Reading candidates are marked NoLearning.
func BuildSegments(tokens []Token, rt model.RequestType) *model.Segments {
	segs := &model.Segments{RequestType: rt}
	for _, tk := range tokens {
		key := tk.Text
		if tk.Reading != "" {
			key = katakanaToHiragana(tk.Reading)
		}
		seg := segs.PushBackSegment()
		seg.Key = key

		seen := map[string]bool{}
		add := func(value string, attrs model.Attributes) {
			if value == "" || seen[value] {
				return
			}
			seen[value] = true
			c := model.NewCandidate(key, value)
			c.Attributes = attrs
			seg.Candidates = append(seg.Candidates, c)
		}
		add(tk.Text, 0)
		add(tk.Reading, model.NewAttributes(model.NoLearning))
		add(key, model.NewAttributes(model.NoLearning))
	}
	return segs
}
