// Package tts implements long-form text-to-speech synthesis on top of a
// pre-trained neural voice model: chunk segmentation of arbitrary text,
// phoneme and token preparation, voice-identity blending, crossfade
// stitching of per-segment model output, and interruptible streaming
// playback.
package tts

// Phonemizer converts text into an ordered sequence of phoneme symbols.
type Phonemizer interface {
	// Phonemize returns the phoneme symbols for text in the given language,
	// punctuation preserved. It fails on an invalid language tag or an
	// internal phonemizer error.
	Phonemize(text, lang string) ([]string, error)
}

// InferenceSession runs the neural voice model. Implementations are not
// assumed safe for concurrent invocation; the engine serializes all calls
// behind a single lock.
type InferenceSession interface {
	// Infer runs the model with a [1,N] token tensor, a [1,StyleDim] style
	// tensor and a scalar speed, and returns the flat mono sample sequence
	// from the model's "audio" output.
	Infer(tokens []int64, style []float32, speed float32) ([]float32, error)

	// Close releases the session.
	Close() error
}

// Player plays a mono float32 sample buffer on an output device. Play
// blocks until playback completes. Implementations are used from a single
// goroutine at a time.
type Player interface {
	Play(samples []float32) error
	SetVolume(volume float64)
	Close() error
}
