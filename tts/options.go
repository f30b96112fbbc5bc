package tts

// SynthesizeOptions carries the per-call synthesis parameters. The zero
// value is not useful; start from DefaultSynthesizeOptions.
type SynthesizeOptions struct {
	// Voice is a voice name or weighted mix specification
	// (e.g. "af_sky" or "af_sky.8+af_bella.2").
	Voice string

	// Speed is the user-facing speed multiplier (1.0 = normal). It is
	// rescaled and clamped to the model's safe operating range before
	// inference.
	Speed float64

	// Gain is a linear output gain (1.0 = unchanged), applied once after
	// stitching, with hard clipping.
	Gain float64

	// Lang is the language tag handed to the phonemizer.
	Lang string
}

// DefaultSynthesizeOptions returns the default synthesis parameters.
func DefaultSynthesizeOptions() SynthesizeOptions {
	return SynthesizeOptions{
		Voice: DefaultVoice,
		Speed: DefaultSpeed,
		Gain:  1.0,
		Lang:  DefaultLang,
	}
}

// WithVoice returns a copy of o with the voice specification set.
func (o SynthesizeOptions) WithVoice(voice string) SynthesizeOptions {
	o.Voice = voice
	return o
}

// WithSpeed returns a copy of o with the user-facing speed set.
func (o SynthesizeOptions) WithSpeed(speed float64) SynthesizeOptions {
	o.Speed = speed
	return o
}

// WithGain returns a copy of o with the gain multiplier set.
func (o SynthesizeOptions) WithGain(gain float64) SynthesizeOptions {
	o.Gain = gain
	return o
}

// WithLang returns a copy of o with the phonemizer language tag set.
func (o SynthesizeOptions) WithLang(lang string) SynthesizeOptions {
	o.Lang = lang
	return o
}
