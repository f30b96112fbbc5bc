package tts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StyleDim is the length of every voice identity embedding.
const StyleDim = 256

// VoiceTable maps voice names to their stored style vectors. It is loaded
// once at engine construction and shared read-only by all synthesis calls.
type VoiceTable map[string][]float32

// Names returns the voice names in the table, sorted.
func (t VoiceTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveStyle parses a voice specification against the table and returns a
// StyleDim-length blend vector.
//
// A specification is either a plain voice name ("af_sky") or a weighted mix
// of names ("af_sky.8+af_bella.2") where each weight is a single-digit
// tenths value. The result is the weighted sum of the contributing voices'
// stored vectors.
func ResolveStyle(table VoiceTable, spec string) ([]float32, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("%w: empty specification", ErrMalformedVoiceSpec)
	}

	result := make([]float32, StyleDim)

	for _, part := range strings.Split(spec, "+") {
		if part == "" {
			return nil, fmt.Errorf("%w: empty component in %q", ErrMalformedVoiceSpec, spec)
		}

		name := part
		weight := float32(1.0)

		if dot := strings.Index(part, "."); dot >= 0 {
			pieces := strings.Split(part, ".")
			if len(pieces) != 2 {
				return nil, fmt.Errorf("%w: %q", ErrMalformedVoiceSpec, part)
			}
			w, err := strconv.ParseFloat(pieces[1], 32)
			if err != nil {
				return nil, fmt.Errorf("%w: bad weight %q", ErrMalformedVoiceSpec, pieces[1])
			}
			name = pieces[0]
			weight = float32(w) / 10
		}

		if name == "" {
			return nil, fmt.Errorf("%w: missing voice name in %q", ErrMalformedVoiceSpec, part)
		}

		vector, ok := table[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrVoiceNotFound, name)
		}

		for i, val := range vector {
			if i >= StyleDim {
				break
			}
			result[i] += val * weight
		}
	}

	return result, nil
}
