package tts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/kokogo/internal/wavio"
)

// Fallback clip returned when the voice model cannot be loaded, so
// callers always get some audio.
//
//go:embed assets/fallback.wav
var fallbackWAV []byte

// Engine is the synthesis facade. It owns the inference session, the voice
// table and the vocabulary. The voice table and vocabulary are immutable
// after construction and shared freely; the inference session is guarded by
// a lock so that at most one inference call executes at a time.
type Engine struct {
	session   InferenceSession
	sessionMu sync.Mutex

	phonemizer Phonemizer
	voices     VoiceTable
	vocab      Vocabulary
	cfg        Config

	fallbackMode bool
	fallbackClip []float32

	closed bool
	mu     sync.Mutex
}

// NewEngine wires an inference session, a phonemizer and a loaded voice
// table into a ready engine.
func NewEngine(cfg Config, session InferenceSession, phonemizer Phonemizer, voices VoiceTable) (*Engine, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil inference session", ErrModelUnavailable)
	}
	if phonemizer == nil {
		return nil, fmt.Errorf("nil phonemizer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		session:    session,
		phonemizer: phonemizer,
		voices:     voices,
		vocab:      NewVocabulary(),
		cfg:        cfg,
	}, nil
}

// NewFallbackEngine returns a degraded engine for use when the model files
// could not be loaded. Every synthesis call returns the bundled
// pre-recorded clip instead of running inference.
func NewFallbackEngine(cfg Config) (*Engine, error) {
	clip, rate, err := wavio.Decode(bytes.NewReader(fallbackWAV))
	if err != nil {
		return nil, fmt.Errorf("decoding fallback clip: %w", err)
	}
	if rate != SampleRate {
		log.Warn("fallback clip sample rate differs from engine rate", "clip", rate, "engine", SampleRate)
	}
	return &Engine{
		vocab:        NewVocabulary(),
		cfg:          cfg,
		fallbackMode: true,
		fallbackClip: clip,
	}, nil
}

// FallbackMode reports whether the engine is running without a model.
func (e *Engine) FallbackMode() bool {
	return e.fallbackMode
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Voices lists the available voice names.
func (e *Engine) Voices() []string {
	if e.fallbackMode {
		return []string{"fallback"}
	}
	return e.voices.Names()
}

// Synthesize converts text to a mono sample buffer using the configured
// defaults. It blocks until synthesis completes.
func (e *Engine) Synthesize(text string) ([]float32, error) {
	opts := DefaultSynthesizeOptions()
	opts.Voice = e.cfg.Voice
	opts.Speed = e.cfg.Speed
	opts.Gain = e.cfg.Gain
	opts.Lang = e.cfg.Lang
	return e.SynthesizeWith(text, opts)
}

// SynthesizeWith converts text to a mono sample buffer with explicit
// parameters. Long text is chunked at safe boundaries, each chunk is
// synthesized independently, and the results are stitched with a short
// crossfade. Any chunk error aborts the whole call; no partial audio is
// returned.
func (e *Engine) SynthesizeWith(text string, opts SynthesizeOptions) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if err := e.checkOpen(); err != nil {
		return nil, err
	}

	if e.fallbackMode {
		log.Debug("fallback mode, returning canned clip", "chars", len(text))
		clip := make([]float32, len(e.fallbackClip))
		copy(clip, e.fallbackClip)
		return clip, nil
	}

	if opts.Voice == "" {
		opts.Voice = DefaultVoice
	}
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	style, err := e.resolveStyle(opts.Voice)
	if err != nil {
		return nil, err
	}
	speed := clampSpeed(opts.Speed)

	// Short form: synthesize in one pass for predictable cadence.
	if !NeedsChunking(text) {
		audio, err := e.synthesizeSegment(style, text, speed, opts.Lang)
		if err != nil {
			return nil, err
		}
		return applyGain(audio, opts.Gain), nil
	}

	chunks := SplitText(text, e.cfg.MaxChunkChars)
	if len(chunks) == 0 {
		return nil, ErrEmptyInput
	}
	log.Debug("long-form synthesis",
		"chars", len([]rune(text)), "chunks", len(chunks), "budget", e.cfg.MaxChunkChars)

	overlap := CrossfadeSamples(SampleRate)
	var combined []float32
	for i, chunk := range chunks {
		segment, err := e.synthesizeSegment(style, chunk, speed, opts.Lang)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		combined = appendCrossfade(combined, segment, overlap)
	}
	if len(combined) == 0 {
		return nil, fmt.Errorf("%w: no audio produced", ErrInference)
	}

	return applyGain(combined, opts.Gain), nil
}

// ResolveStyle resolves a voice specification to a blend vector using the
// engine's voice table. In fallback mode it returns a zero vector.
func (e *Engine) ResolveStyle(spec string) ([]float32, error) {
	return e.resolveStyle(spec)
}

// SaveWAV writes samples to path as 16-bit mono PCM at the engine sample
// rate.
func (e *Engine) SaveWAV(path string, samples []float32) error {
	return wavio.Save(path, samples, SampleRate)
}

// WAVBytes encodes samples as an in-memory WAV file.
func (e *Engine) WAVBytes(samples []float32) ([]byte, error) {
	return wavio.Bytes(samples, SampleRate)
}

// Close releases the inference session. Further synthesis calls fail with
// ErrEngineClosed. Close waits for any in-flight inference to finish
// before destroying the session.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	// The session lock is never held while waiting on e.mu, so taking
	// them in this order cannot deadlock.
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()
	if e.session != nil {
		return e.session.Close()
	}
	return nil
}

func (e *Engine) checkOpen() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	return nil
}

func (e *Engine) resolveStyle(spec string) ([]float32, error) {
	if e.fallbackMode {
		return make([]float32, StyleDim), nil
	}
	return ResolveStyle(e.voices, spec)
}

// clampSpeed maps the user-facing speed onto the model's safe operating
// range.
func clampSpeed(speed float64) float32 {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	model := speed * speedScale
	if model < minEngineSpeed {
		model = minEngineSpeed
	}
	if model > maxEngineSpeed {
		model = maxEngineSpeed
	}
	return float32(model)
}

// applyGain runs the post-stitch gain stage. Only exactly 1.0 skips the
// pass; an explicit zero is honored and produces silence.
func applyGain(samples []float32, gain float64) []float32 {
	if gain == 1.0 {
		return samples
	}
	return Amplify(samples, float32(gain))
}
