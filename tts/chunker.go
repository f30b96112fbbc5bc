package tts

import (
	"strings"
	"unicode/utf8"
)

// Chunking constants, tuned by trial against the kokoro voice model.
const (
	// longTextThreshold is the character count at which synthesis switches
	// from the single-pass path to the chunked path.
	longTextThreshold = 120

	// maxUnchunkedLines is the most lines a text may span and still be
	// synthesized in a single pass.
	maxUnchunkedLines = 3

	// DefaultMaxChunkChars is the character budget for a bulk chunk.
	DefaultMaxChunkChars = 180
)

// NeedsChunking reports whether text is long enough that it must be split
// into chunks for consistent pacing.
func NeedsChunking(text string) bool {
	if utf8.RuneCountInString(text) >= longTextThreshold {
		return true
	}
	return len(strings.Split(strings.TrimRight(text, "\n"), "\n")) > maxUnchunkedLines
}

// SplitText splits text into chunks of at most maxChars characters at
// linguistically safe boundaries: whole sentences are greedily packed, a
// sentence over budget is split at clause (comma) boundaries, and a clause
// over budget falls back to word groups. Chunk boundaries never land inside
// a word, and every returned chunk is non-empty after trimming.
func SplitText(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}

	var chunks []string
	var current string
	closeCurrent := func() {
		if s := strings.TrimSpace(current); s != "" {
			chunks = append(chunks, s)
		}
		current = ""
	}

	for _, sentence := range splitSentences(text) {
		// Budgets count runes, not bytes, so multi-byte text packs the
		// same as ASCII.
		if utf8.RuneCountInString(sentence) > maxChars {
			closeCurrent()
			chunks = append(chunks, splitLongSentence(sentence, maxChars)...)
			continue
		}

		if current != "" && utf8.RuneCountInString(current)+1+utf8.RuneCountInString(sentence) > maxChars {
			closeCurrent()
		}
		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	closeCurrent()

	// Text without a single sentence terminator lands here whole.
	if len(chunks) == 0 && strings.TrimSpace(text) != "" {
		chunks = splitWords(text, maxChars)
	}

	return chunks
}

// splitSentences cuts text on sentence terminators (. ! ?), re-attaching
// the terminator that followed each sentence and dropping empty fragments.
// Terminator runs like "?!" stay with the sentence they end.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if strings.TrimSpace(b.String()) == "" && len(sentences) > 0 {
				sentences[len(sentences)-1] += string(r)
				b.Reset()
				continue
			}
			b.WriteRune(r)
			flush()
			continue
		}
		b.WriteRune(r)
	}
	flush()

	return sentences
}

// splitLongSentence breaks an over-budget sentence at commas, keeping each
// comma with its clause, and word-splits any clause still over budget.
func splitLongSentence(sentence string, maxChars int) []string {
	clauses := splitClauses(sentence)
	if len(clauses) <= 1 {
		return splitWords(sentence, maxChars)
	}

	var chunks []string
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if utf8.RuneCountInString(clause) > maxChars {
			chunks = append(chunks, splitWords(clause, maxChars)...)
		} else {
			chunks = append(chunks, clause)
		}
	}
	return chunks
}

// splitClauses cuts a sentence after each comma, keeping the comma.
func splitClauses(sentence string) []string {
	var clauses []string
	var b strings.Builder
	for _, r := range sentence {
		b.WriteRune(r)
		if r == ',' {
			clauses = append(clauses, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		clauses = append(clauses, b.String())
	}
	return clauses
}

// splitWords accumulates whitespace-separated words into groups of at most
// maxChars characters. A single word longer than the budget becomes its own
// group rather than being cut mid-word.
func splitWords(text string, maxChars int) []string {
	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wordLen > maxChars {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			currentLen = 0
		}
		current = append(current, word)
		if currentLen == 0 {
			currentLen = wordLen
		} else {
			currentLen += 1 + wordLen
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
