package script

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Half-width katakana spells voiced kana as base + a spacing sound mark
// (ｶﾞ), full-width katakana uses precomposed runes (ガ). The chains below go
// through the combining marks U+3099/U+309A so norm can split and compose.

func halfMarkToCombining(r rune) rune {
	switch r {
	case 'ﾞ':
		return '\u3099'
	case 'ﾟ':
		return '\u309A'
	}
	return r
}

func combiningToHalfMark(r rune) rune {
	switch r {
	case '\u3099':
		return 'ﾞ'
	case '\u309A':
		return 'ﾟ'
	}
	return r
}

func widen() transform.Transformer {
	return transform.Chain(runes.Map(halfMarkToCombining), width.Widen, norm.NFC)
}

func narrow() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Map(combiningToHalfMark), width.Narrow)
}

func apply(t transform.Transformer, text string) string {
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// ToFullWidth renders ASCII and half-width katakana in their full-width forms.
func ToFullWidth(text string) string {
	return apply(widen(), text)
}

// ToHalfWidth renders full-width ASCII and katakana in their half-width forms.
func ToHalfWidth(text string) string {
	return apply(narrow(), text)
}

// Convert renders text in form. FormUnknown returns text unchanged.
func Convert(text string, form Form) string {
	switch form {
	case FullWidth:
		return ToFullWidth(text)
	case HalfWidth:
		return ToHalfWidth(text)
	}
	return text
}
