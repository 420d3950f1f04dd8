package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentence represents an ingested line of input and its metadata.
type Sentence struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrEmpty is returned for input that is blank after trimming.
var ErrEmpty = errors.New("empty sentence")

// IngestSentence trims and validates text and stamps it with a fresh id.
func IngestSentence(text string) (Sentence, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Sentence{}, ErrEmpty
	}
	return Sentence{
		ID:        uuid.NewString(),
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ReadSentences ingests one sentence per non-blank line of r.
func ReadSentences(r io.Reader) ([]Sentence, error) {
	var out []Sentence
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s, err := IngestSentence(sc.Text())
		if errors.Is(err, ErrEmpty) {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}
