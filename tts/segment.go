package tts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// synthesizeSegment runs the full pipeline for one chunk of text:
// phonemize, pad, tokenize, infer. The session lock serializes inference
// because the underlying runtime session is not safe for concurrent Run
// calls.
func (e *Engine) synthesizeSegment(style []float32, text string, speed float32, lang string) ([]float32, error) {
	phonemes, err := e.phonemizer.Phonemize(text, lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPhonemization, err)
	}
	if len(phonemes) == 0 {
		return nil, fmt.Errorf("%w: no phonemes for %q", ErrPhonemization, text)
	}

	// Leading and trailing silence padding keeps the model from clipping
	// the first and last phonemes.
	padded := padRun + strings.Join(phonemes, " ") + padRun
	tokens := e.vocab.Tokenize(padded)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty token sequence", ErrTensorConstruction)
	}

	e.sessionMu.Lock()
	// Re-check under the session lock: Close marks the engine closed and
	// then destroys the session behind this same lock, so a call that
	// passed the entry check cannot reach a destroyed session.
	if err := e.checkOpen(); err != nil {
		e.sessionMu.Unlock()
		return nil, err
	}
	audio, err := e.session.Infer(tokens, style, speed)
	e.sessionMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	log.Debug("segment synthesized", "tokens", len(tokens), "samples", len(audio))
	return audio, nil
}
