package tts

// The model's token alphabet, in id order. The id of a symbol is its rune
// position in the concatenation of these four groups.
const (
	padSymbol   = "$"
	punctuation = `;:,.!?¡¿—…"«»“” `
	letters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	lettersIPA  = "ɑɐɒæɓʙβɔɕçɗɖðʤəɘɚɛɜɝɞɟʄɡɠɢʛɦɧħɥʜɨɪʝɭɬɫɮʟɱɯɰŋɳɲɴøɵɸθœɶʘɹɺɾɻʀʁɽʂʃʈʧʉʊʋⱱʌɣɤʍχʎʏʑʐʒʔʡʕʢǀǁǂǃˈˌːˑʼʴʰʱʲʷˠˤ˞↓↑→↗↘'̩'ᵻ"
)

// padRun is prepended and appended to the phoneme text before tokenization.
// The model drops leading and trailing words without this buffering; three
// repetitions is an empirically tuned count, not a derived one.
const padRun = padSymbol + padSymbol + padSymbol

// Vocabulary maps alphabet runes to stable token ids. It is immutable after
// construction and safe for concurrent use.
type Vocabulary map[rune]int64

// NewVocabulary builds the fixed model alphabet.
func NewVocabulary() Vocabulary {
	v := make(Vocabulary)
	for i, r := range []rune(padSymbol + punctuation + letters + lettersIPA) {
		v[r] = int64(i)
	}
	return v
}

// Tokenize converts text into token ids, one per rune. Runes outside the
// alphabet degrade to id 0 rather than failing the synthesis.
func (v Vocabulary) Tokenize(text string) []int64 {
	tokens := make([]int64, 0, len(text))
	for _, r := range text {
		tokens = append(tokens, v[r])
	}
	return tokens
}
