package tts

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const (
	defaultStreamChunkChars = 50
	streamChunkOverlap      = 5
	defaultQueueDepth       = 3
)

// interruptPhrases are spoken or typed commands that stop playback when
// seen on the interrupt listener.
var interruptPhrases = []string{
	"aye",
	"stop",
	"quiet",
	"hush",
	"enough",
	"pause",
	"it's raining",
	"it's raining dude",
}

// Streamer speaks text incrementally: it splits the input into small
// chunks, synthesizes them on a producer goroutine and plays them from a
// consumer goroutine over a bounded queue, so playback starts before the
// whole text is synthesized. A stream can be interrupted between chunks.
type Streamer struct {
	engine *Engine
	player Player

	mu    sync.Mutex
	voice string
	speed float64
	gain  float64
	lang  string

	isSpeaking  atomic.Bool
	interrupted atomic.Bool

	stopMu   sync.Mutex
	stop     chan struct{}
	stopOnce *sync.Once
}

// NewStreamer wires an engine and a player into a streaming speaker. The
// stream inherits the engine's configured voice and parameters until
// overridden.
func NewStreamer(engine *Engine, player Player) *Streamer {
	cfg := engine.Config()
	return &Streamer{
		engine: engine,
		player: player,
		voice:  cfg.Voice,
		speed:  cfg.Speed,
		gain:   cfg.Gain,
		lang:   cfg.Lang,
	}
}

// SetVoice changes the voice used for subsequent Speak calls.
func (s *Streamer) SetVoice(voice string) {
	s.mu.Lock()
	s.voice = voice
	s.mu.Unlock()
}

// SetParameters changes speed and gain for subsequent Speak calls.
func (s *Streamer) SetParameters(speed, gain float64) {
	s.mu.Lock()
	s.speed = speed
	s.gain = gain
	s.mu.Unlock()
}

// SetVolume changes the playback volume, taking effect on the next chunk.
func (s *Streamer) SetVolume(volume float64) {
	s.player.SetVolume(volume)
}

// IsSpeaking reports whether a Speak call is in flight.
func (s *Streamer) IsSpeaking() bool {
	return s.isSpeaking.Load()
}

// Interrupt stops the current stream at the next chunk boundary. It is
// safe to call from any goroutine and is a no-op when nothing is playing.
func (s *Streamer) Interrupt() {
	s.interrupted.Store(true)
	s.stopMu.Lock()
	if s.stopOnce != nil {
		stop := s.stop
		s.stopOnce.Do(func() { close(stop) })
	}
	s.stopMu.Unlock()
}

// ListenForInterrupt reads lines from r until EOF and interrupts the
// stream whenever a line matches one of the interrupt phrases. It is
// meant to run on its own goroutine, usually with os.Stdin.
func (s *Streamer) ListenForInterrupt(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		if isInterruptPhrase(line) {
			log.Debug("interrupt phrase received", "phrase", line)
			s.Interrupt()
		}
	}
}

func isInterruptPhrase(line string) bool {
	for _, phrase := range interruptPhrases {
		if line == phrase {
			return true
		}
	}
	return false
}

// Speak synthesizes and plays text chunk by chunk, blocking until the
// stream finishes or is interrupted. Only one stream may run at a time;
// a second call while speaking fails with ErrAlreadySpeaking. Chunks that
// fail to synthesize are logged and skipped rather than aborting the
// stream.
func (s *Streamer) Speak(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if !s.isSpeaking.CompareAndSwap(false, true) {
		return ErrAlreadySpeaking
	}
	defer s.isSpeaking.Store(false)

	s.interrupted.Store(false)
	stop := make(chan struct{})
	s.stopMu.Lock()
	s.stop = stop
	s.stopOnce = new(sync.Once)
	s.stopMu.Unlock()

	s.mu.Lock()
	opts := SynthesizeOptions{Voice: s.voice, Speed: s.speed, Gain: s.gain, Lang: s.lang}
	s.mu.Unlock()

	chunkChars := s.engine.Config().StreamChunkChars
	if chunkChars <= 0 {
		chunkChars = defaultStreamChunkChars
	}
	depth := s.engine.Config().QueueDepth
	if depth <= 0 {
		depth = defaultQueueDepth
	}

	chunks := splitStreamChunks(text, chunkChars)
	if len(chunks) == 0 {
		return ErrEmptyInput
	}
	log.Debug("streaming speech", "chunks", len(chunks), "queue", depth)

	queue := make(chan []float32, depth)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(queue)
		for i, chunk := range chunks {
			if s.interrupted.Load() {
				return
			}
			audio, err := s.engine.SynthesizeWith(chunk, opts)
			if err != nil {
				log.Warn("skipping stream chunk", "index", i, "err", err)
				continue
			}
			select {
			case queue <- audio:
			case <-stop:
				return
			}
		}
	}()

	var playErr error
	for audio := range queue {
		if s.interrupted.Load() {
			break
		}
		if err := s.player.Play(audio); err != nil {
			playErr = err
			s.Interrupt()
			break
		}
	}

	// Unblock the producer and drain whatever it already queued.
	s.stopMu.Lock()
	s.stopOnce.Do(func() { close(stop) })
	s.stopMu.Unlock()
	for range queue {
	}
	wg.Wait()

	if s.interrupted.Load() && playErr == nil {
		log.Debug("stream interrupted")
	}
	return playErr
}

// splitStreamChunks breaks text into short pieces suitable for low-latency
// streaming. Sentences are split first, then packed word by word up to the
// budget; a chunk may close early at a clause mark once at least half the
// budget is used, carrying a short tail of the last words into the next
// chunk so prosody does not reset abruptly.
func splitStreamChunks(text string, budget int) []string {
	if budget <= 0 {
		budget = defaultStreamChunkChars
	}
	var chunks []string
	for _, sentence := range splitStreamSentences(text) {
		chunks = append(chunks, packStreamSentence(sentence, budget)...)
	}
	return chunks
}

func splitStreamSentences(text string) []string {
	var sentences []string
	var cur strings.Builder
	for _, r := range text {
		switch r {
		case '.', '!', '?', '\n':
			if r != '\n' {
				cur.WriteRune(r)
			}
			if s := strings.TrimSpace(cur.String()); s != "" {
				sentences = append(sentences, s)
			}
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func packStreamSentence(sentence string, budget int) []string {
	if len([]rune(sentence)) <= budget {
		return []string{sentence}
	}
	words := strings.Fields(sentence)
	var chunks []string
	var cur []string
	curLen := 0
	seeded := false
	flush := func(tail bool) {
		if len(cur) == 0 || (seeded && len(cur) == 1) {
			return
		}
		chunks = append(chunks, strings.Join(cur, " "))
		seeded = false
		if tail {
			// Seed the next chunk with a short tail of the previous
			// one to smooth the prosody across the boundary.
			seed := cur[len(cur)-1]
			if len([]rune(seed)) <= streamChunkOverlap {
				cur = []string{seed}
				curLen = len([]rune(seed))
				seeded = true
				return
			}
		}
		cur = cur[:0]
		curLen = 0
	}
	for _, w := range words {
		wl := len([]rune(w))
		if curLen > 0 && curLen+1+wl > budget {
			flush(false)
		}
		cur = append(cur, w)
		if curLen > 0 {
			curLen++
		}
		curLen += wl
		if curLen >= budget/2 && endsAtClause(w) {
			flush(true)
		}
	}
	flush(false)
	return chunks
}

func endsAtClause(word string) bool {
	return strings.HasSuffix(word, ",") ||
		strings.HasSuffix(word, ";") ||
		strings.HasSuffix(word, ":")
}
