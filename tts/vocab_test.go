package tts

import "testing"

func TestVocabularyPadIsZero(t *testing.T) {
	v := NewVocabulary()
	if got := v['$']; got != 0 {
		t.Errorf("pad token id = %d, want 0", got)
	}
}

func TestVocabularyStableIDs(t *testing.T) {
	v := NewVocabulary()
	// Spot checks against the symbol ordering: pad, punctuation, letters,
	// then IPA symbols.
	if v[';'] != 1 {
		t.Errorf("';' = %d, want 1", v[';'])
	}
	if v['A'] != v[';']+len32(punctuation) {
		t.Errorf("'A' = %d, want %d", v['A'], v[';']+len32(punctuation))
	}
}

func len32(s string) int64 {
	n := int64(0)
	for range s {
		n++
	}
	return n
}

func TestTokenizeUnknownRunesMapToPad(t *testing.T) {
	v := NewVocabulary()
	tokens := v.Tokenize("a\x01b")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[1] != 0 {
		t.Errorf("unknown rune token = %d, want 0", tokens[1])
	}
	if tokens[0] == 0 || tokens[2] == 0 {
		t.Errorf("known runes mapped to pad: %v", tokens)
	}
}

func TestTokenizeRoundTripLength(t *testing.T) {
	v := NewVocabulary()
	in := "həˈloʊ wˈɝːld!"
	tokens := v.Tokenize(in)
	if want := len([]rune(in)); len(tokens) != want {
		t.Errorf("got %d tokens for %d runes", len(tokens), want)
	}
}
