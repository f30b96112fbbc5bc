package tts

// crossfadeMS is the stitch overlap between consecutive segment outputs.
// Independently synthesized segments carry a little onset/offset silence;
// a 45ms linear fade swallows it along with the concatenation click.
const crossfadeMS = 45

// CrossfadeSamples returns the stitch overlap in samples at the given rate.
func CrossfadeSamples(sampleRate int) int {
	return sampleRate * crossfadeMS / 1000
}

// appendCrossfade appends next onto buf, linearly cross-fading the last
// overlap samples of buf into the first overlap samples of next. When buf
// is empty or overlap is zero the segment is appended outright. The overlap
// is capped at the length of the shorter side.
func appendCrossfade(buf, next []float32, overlap int) []float32 {
	if len(next) == 0 {
		return buf
	}
	if len(buf) == 0 || overlap <= 0 {
		return append(buf, next...)
	}

	if overlap > len(buf) {
		overlap = len(buf)
	}
	if overlap > len(next) {
		overlap = len(next)
	}

	start := len(buf) - overlap
	for i := 0; i < overlap; i++ {
		fadeIn := float32(i) / float32(overlap)
		buf[start+i] = buf[start+i]*(1-fadeIn) + next[i]*fadeIn
	}
	return append(buf, next[overlap:]...)
}

// Amplify multiplies every sample by gain and hard-clips the result to
// [-1, 1]. Clipping is intentional: at extreme gain, loudness wins over
// fidelity.
func Amplify(samples []float32, gain float32) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		v := s * gain
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = v
	}
	return out
}
