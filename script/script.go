// Package script classifies Japanese input-method candidates by writing
// system and converts them between their full-width and half-width
// renderings.
package script

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"
)

// Category is the writing-system class of a string.
type Category int

const (
	Mixed Category = iota
	Hiragana
	Katakana
	Alphabet
	Digit
	Symbol
	FullWidthForms
	Kanji
	PrivateUse
)

var categoryNames = [...]string{
	Mixed:          "mixed",
	Hiragana:       "hiragana",
	Katakana:       "katakana",
	Alphabet:       "alphabet",
	Digit:          "digit",
	Symbol:         "symbol",
	FullWidthForms: "fullwidth_forms",
	Kanji:          "kanji",
	PrivateUse:     "private_use",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// HasVariants reports whether strings of c have both a full-width and a
// half-width rendering.
func (c Category) HasVariants() bool {
	switch c {
	case Katakana, Alphabet, Digit, Symbol:
		return true
	}
	return false
}

// ParseCategory maps a category name as printed by String back to its value.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Mixed, fmt.Errorf("unknown script category %q", s)
}

// Form is a width rendering.
type Form int

const (
	// FormUnknown covers width-neutral text and text mixing both widths.
	FormUnknown Form = iota
	FullWidth
	HalfWidth
)

func (f Form) String() string {
	switch f {
	case FullWidth:
		return "full"
	case HalfWidth:
		return "half"
	}
	return "unknown"
}

// Opposite returns the other width, or FormUnknown for FormUnknown.
func (f Form) Opposite() Form {
	switch f {
	case FullWidth:
		return HalfWidth
	case HalfWidth:
		return FullWidth
	}
	return FormUnknown
}

// ParseForm accepts "full", "half" and their "_width" spellings.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "full_width", "fullwidth":
		return FullWidth, nil
	case "half", "half_width", "halfwidth":
		return HalfWidth, nil
	}
	return FormUnknown, fmt.Errorf("unknown width form %q", s)
}

// Info is the result of inspecting a string.
type Info struct {
	Category Category
	Form     Form
}

type runeClass int

const (
	classOther runeClass = iota
	classLetter
	classDigit
	classPunct
	classKanaMark
	classKatakana
	classHiragana
	classHan
	numClasses
)

func isPrivateUse(r rune) bool {
	return unicode.Is(unicode.Co, r)
}

// classOf folds r to its canonical width before classifying, so "Ａ" and "A"
// or "ｱ" and "ア" land in the same class.
func classOf(r rune) runeClass {
	f := r
	if folded := width.LookupRune(r).Folded(); folded != 0 {
		f = folded
	}
	switch {
	case f >= 'a' && f <= 'z', f >= 'A' && f <= 'Z':
		return classLetter
	case f >= '0' && f <= '9':
		return classDigit
	case f < utf8.RuneSelf && (f == ' ' || unicode.IsPunct(f) || unicode.IsSymbol(f)):
		return classPunct
	case f == '、', f == '。', f == '「', f == '」':
		return classPunct
	case f == 'ー', f == '・', f == '゛', f == '゜', f == '\u3099', f == '\u309A':
		return classKanaMark
	case unicode.Is(unicode.Katakana, f):
		return classKatakana
	case unicode.Is(unicode.Hiragana, f):
		return classHiragana
	case unicode.Is(unicode.Han, f), f == '々', f == '〆':
		return classHan
	}
	return classOther
}

func isFullWidthFormsBlock(r rune) bool {
	return r >= 0xFF00 && r <= 0xFFEF
}

// Inspect classifies text and reports its current width.
//
// Platform-dependent runes win over everything else. Ill-formed UTF-8 and
// the empty string are Mixed.
func Inspect(text string) Info {
	if text == "" || !utf8.ValidString(text) {
		return Info{Category: Mixed}
	}
	if IsPlatformDependent(text) {
		return Info{Category: PrivateUse}
	}
	var counts [numClasses]int
	total, full, half := 0, 0, 0
	formsBlock := true
	for _, r := range text {
		counts[classOf(r)]++
		total++
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			full++
		case width.EastAsianHalfwidth, width.EastAsianNarrow:
			half++
		}
		if !isFullWidthFormsBlock(r) {
			formsBlock = false
		}
	}

	only := func(classes ...runeClass) bool {
		n := 0
		for _, c := range classes {
			n += counts[c]
		}
		return n == total
	}

	info := Info{Category: Mixed}
	switch {
	case counts[classKatakana] > 0 && only(classKatakana, classKanaMark, classPunct):
		info.Category = Katakana
	case counts[classLetter] > 0 && only(classLetter, classPunct):
		info.Category = Alphabet
	case counts[classDigit] > 0 && only(classDigit, classPunct):
		info.Category = Digit
	case only(classPunct, classKanaMark):
		info.Category = Symbol
	case counts[classHiragana] > 0 && only(classHiragana, classKanaMark, classPunct):
		info.Category = Hiragana
	case only(classHan):
		info.Category = Kanji
	case formsBlock:
		info.Category = FullWidthForms
	}

	switch {
	case full > 0 && half == 0:
		info.Form = FullWidth
	case half > 0 && full == 0:
		info.Form = HalfWidth
	}
	return info
}

// Classify returns the category of text.
func Classify(text string) Category {
	return Inspect(text).Category
}

// FormOf returns the width text is currently rendered in.
func FormOf(text string) Form {
	return Inspect(text).Form
}

// IsPlatformDependent reports whether text holds a rune that cannot be shown
// portably: a private-use (gaiji) rune, or one outside JIS X 0201 and
// JIS X 0208 such as 彅 or ①.
func IsPlatformDependent(text string) bool {
	enc := japanese.ShiftJIS.NewEncoder()
	var buf [utf8.UTFMax]byte
	for _, r := range text {
		if r < utf8.RuneSelf {
			continue
		}
		if isPrivateUse(r) {
			return true
		}
		n := utf8.EncodeRune(buf[:], r)
		sjis, err := enc.Bytes(buf[:n])
		if err != nil || !inJIS(sjis) {
			return true
		}
	}
	return false
}

// inJIS reports whether a Shift_JIS sequence encodes JIS X 0201 or a
// JIS X 0208 row. Lead bytes 0x85-0x87 and 0xED-0xFC hold vendor
// extensions (NEC row 13, NEC-selected and IBM kanji).
func inJIS(sjis []byte) bool {
	switch len(sjis) {
	case 1:
		return true
	case 2:
		lead := sjis[0]
		return lead >= 0x81 && lead <= 0x84 ||
			lead >= 0x88 && lead <= 0x9F ||
			lead >= 0xE0 && lead <= 0xEA
	}
	return false
}
