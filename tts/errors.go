package tts

import "errors"

// Common errors for the synthesis pipeline.
var (
	// Voice resolution errors
	ErrVoiceNotFound      = errors.New("requested voice not found")
	ErrMalformedVoiceSpec = errors.New("malformed voice specification")

	// Synthesis errors
	ErrEmptyInput         = errors.New("no text provided for synthesis")
	ErrPhonemization      = errors.New("phonemization failed")
	ErrTensorConstruction = errors.New("tensor construction failed")
	ErrInference          = errors.New("inference failed")

	// Engine errors
	ErrModelUnavailable = errors.New("voice model is not available")
	ErrEngineClosed     = errors.New("engine has been closed")

	// Streaming errors
	ErrAlreadySpeaking = errors.New("a stream is already in progress")
)
