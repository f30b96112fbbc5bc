// Package phoneme converts text to IPA phoneme strings for the synthesis
// model, using espeak-ng as an external process.
package phoneme

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the espeak-ng executable looked up on PATH when no
// explicit path is configured.
const DefaultBinary = "espeak-ng"

// Espeak shells out to espeak-ng for phonemization. It is stateless and
// safe for concurrent use; each call runs a fresh process.
type Espeak struct {
	binary string
}

// NewEspeak returns a phonemizer backed by the given espeak-ng binary.
// An empty binary falls back to DefaultBinary.
func NewEspeak(binary string) *Espeak {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Espeak{binary: binary}
}

// Available reports whether the configured binary can be found.
func (e *Espeak) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Phonemize converts text into IPA phoneme tokens for the given language.
func (e *Espeak) Phonemize(text, lang string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}
	if lang == "" {
		lang = "en"
	}

	cmd := exec.Command(e.binary, "-q", "--ipa=3", "-v", lang)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w (%s)", e.binary, err, strings.TrimSpace(stderr.String()))
	}

	phonemes := ParsePhonemes(stdout.String())
	if len(phonemes) == 0 {
		return nil, fmt.Errorf("no phonemes produced for %q", text)
	}
	log.Debug("phonemized", "chars", len(text), "phonemes", len(phonemes))
	return phonemes, nil
}

// ParsePhonemes splits espeak-ng --ipa=3 output into phoneme tokens. The
// output separates phonemes with underscores and words with spaces;
// newlines separate clauses. Tokens keep their stress marks.
func ParsePhonemes(output string) []string {
	var tokens []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, word := range strings.Fields(line) {
			word = strings.ReplaceAll(word, "_", "")
			if word != "" {
				tokens = append(tokens, word)
			}
		}
	}
	return tokens
}
