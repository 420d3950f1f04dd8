package model

import (
	"fmt"
	"strings"
)

// Token represents a token / morpheme produced by the tokenizer.
type Token struct {
	Text          string `json:"text"`
	Lemma         string `json:"lemma,omitempty"`
	POS           string `json:"pos,omitempty"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
	Reading       string `json:"reading,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// Attribute is a single candidate flag.
type Attribute uint8

const (
	// NoVariantsExpansion stops the variants rewriter from adding a width twin.
	NoVariantsExpansion Attribute = iota
	// NoLearning marks candidates whose selection must not be learned.
	NoLearning
)

var attributeNames = [...]string{
	NoVariantsExpansion: "no_variants_expansion",
	NoLearning:          "no_learning",
}

func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return fmt.Sprintf("attribute(%d)", a)
}

// Attributes is a set of Attribute values. The zero value is empty.
type Attributes uint32

// NewAttributes returns a set holding attrs.
func NewAttributes(attrs ...Attribute) Attributes {
	var s Attributes
	for _, a := range attrs {
		s = s.Add(a)
	}
	return s
}

func (s Attributes) Has(a Attribute) bool { return s&(1<<a) != 0 }

func (s Attributes) Add(a Attribute) Attributes { return s | 1<<a }

func (s Attributes) Remove(a Attribute) Attributes { return s &^ (1 << a) }

func (s Attributes) String() string {
	var names []string
	for a := range attributeNames {
		if s.Has(Attribute(a)) {
			names = append(names, Attribute(a).String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// MarshalText renders the set as a comma separated list for JSON dumps.
func (s Attributes) MarshalText() ([]byte, error) {
	str := s.String()
	return []byte(str[1 : len(str)-1]), nil
}

// Candidate is one conversion result of a segment.
type Candidate struct {
	Key          string     `json:"key,omitempty"`
	ContentKey   string     `json:"content_key,omitempty"`
	Value        string     `json:"value"`
	ContentValue string     `json:"content_value,omitempty"`
	Description  string     `json:"description,omitempty"`
	Attributes   Attributes `json:"attributes,omitempty"`
}

// NewCandidate returns a candidate whose key and value double as content key and value.
func NewCandidate(key, value string) *Candidate {
	return &Candidate{Key: key, ContentKey: key, Value: value, ContentValue: value}
}

// Clone returns a copy of c.
func (c *Candidate) Clone() *Candidate {
	cp := *c
	return &cp
}

// Segment is an ordered candidate list for one span of input.
type Segment struct {
	Key        string       `json:"key"`
	Candidates []*Candidate `json:"candidates"`
}

// AddCandidate appends an empty candidate and returns it.
func (s *Segment) AddCandidate() *Candidate {
	c := &Candidate{}
	s.Candidates = append(s.Candidates, c)
	return c
}

// InsertCandidate places c at index i, shifting later candidates back.
func (s *Segment) InsertCandidate(i int, c *Candidate) {
	if i < 0 {
		i = 0
	}
	if i >= len(s.Candidates) {
		s.Candidates = append(s.Candidates, c)
		return
	}
	s.Candidates = append(s.Candidates, nil)
	copy(s.Candidates[i+1:], s.Candidates[i:])
	s.Candidates[i] = c
}

func (s *Segment) Candidate(i int) *Candidate { return s.Candidates[i] }

func (s *Segment) Len() int { return len(s.Candidates) }

// Clear drops every candidate.
func (s *Segment) Clear() { s.Candidates = nil }

// Values returns the candidate values in order.
func (s *Segment) Values() []string {
	out := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		out[i] = c.Value
	}
	return out
}

// RequestType says which kind of request produced a Segments value.
type RequestType int

const (
	Conversion RequestType = iota
	Prediction
	Suggestion
	Transliteration
)

var requestTypeNames = map[RequestType]string{
	Conversion:      "conversion",
	Prediction:      "prediction",
	Suggestion:      "suggestion",
	Transliteration: "transliteration",
}

func (r RequestType) String() string {
	if n, ok := requestTypeNames[r]; ok {
		return n
	}
	return fmt.Sprintf("request(%d)", int(r))
}

func (r RequestType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// ParseRequestType maps a request name (case insensitive) to its RequestType.
func ParseRequestType(s string) (RequestType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for rt, n := range requestTypeNames {
		if n == name {
			return rt, nil
		}
	}
	return Conversion, fmt.Errorf("unknown request type %q", s)
}

// Segments is the full conversion result handed to rewriters.
type Segments struct {
	RequestType RequestType `json:"request_type"`
	Segments    []*Segment  `json:"segments"`
}

// PushBackSegment appends an empty segment and returns it.
func (s *Segments) PushBackSegment() *Segment {
	seg := &Segment{}
	s.Segments = append(s.Segments, seg)
	return seg
}

func (s *Segments) Segment(i int) *Segment { return s.Segments[i] }

func (s *Segments) Len() int { return len(s.Segments) }
