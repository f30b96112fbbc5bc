package phoneme

import (
	"fmt"
	"strings"
)

// Canned is a deterministic phonemizer for tests and environments without
// espeak-ng. It returns each input word as a pseudo-phoneme token, so the
// downstream pipeline sees stable, repeatable sequences.
type Canned struct {
	// Responses, when set, overrides the output for exact input strings.
	Responses map[string][]string

	// Err, when set, is returned by every Phonemize call.
	Err error
}

// Phonemize returns the canned response for text, or the lowercased words
// of the input when no canned response exists.
func (c *Canned) Phonemize(text, lang string) ([]string, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	if resp, ok := c.Responses[text]; ok {
		return resp, nil
	}
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return nil, fmt.Errorf("empty text")
	}
	return words, nil
}
