// Package main provides the entry point for the kokogo CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgnsrekt/kokogo/internal/modelfile"
	"github.com/dgnsrekt/kokogo/internal/onnx"
	"github.com/dgnsrekt/kokogo/internal/phoneme"
	"github.com/dgnsrekt/kokogo/tts"
	"github.com/dgnsrekt/kokogo/tts/audio"
	"github.com/dgnsrekt/kokogo/tts/voicepack"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	voiceFlag  string
	speedFlag  float64
	gainFlag   float64
	langFlag   string
	outFile    string
	streamMode bool
	volumeFlag float64
	debugFlag  bool
	noDownload bool

	rootCmd = &cobra.Command{
		Use:   "kokogo [text]",
		Short: "Speak text aloud with the kokoro voice model",
		Long: "\nConvert text to speech with the kokoro voice model and play it on the\n" +
			"default audio device, or write it to a WAV file. Text comes from the\n" +
			"command line or from stdin.",
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE:          execute,
	}

	voicesCmd = &cobra.Command{
		Use:   "voices",
		Short: "List the available voices",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			engine, err := buildEngine()
			if err != nil {
				return err
			}
			defer engine.Close() //nolint:errcheck
			for _, name := range engine.Voices() {
				fmt.Println(name)
			}
			return nil
		},
	}
)

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// gatherText assembles the input text from arguments or a stdin pipe.
func gatherText(args []string) (string, bool, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), false, nil
	}
	piped, err := stdinIsPipe()
	if err != nil {
		return "", false, err
	}
	if !piped {
		return "", false, fmt.Errorf("no text given: pass it as arguments or pipe it to stdin")
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", true, fmt.Errorf("unable to read stdin: %w", err)
	}
	return string(b), true, nil
}

// buildEngine wires the full pipeline. When the model files cannot be
// loaded the CLI degrades to the fallback engine rather than failing, so
// there is always audible output.
func buildEngine() (*tts.Engine, error) {
	cfg, err := tts.LoadConfigFromViper()
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)
	cfg.ResolvePaths()

	if !noDownload {
		if err := modelfile.Ensure(context.Background(), cfg.ModelPath, cfg.VoicesPath); err != nil {
			log.Warn("model download failed, using fallback voice", "err", err)
			return tts.NewFallbackEngine(cfg)
		}
	}

	if err := onnx.Initialize(cfg.OnnxLibrary); err != nil {
		log.Warn("onnx runtime unavailable, using fallback voice", "err", err)
		return tts.NewFallbackEngine(cfg)
	}
	session, err := onnx.Open(cfg.ModelPath)
	if err != nil {
		log.Warn("model load failed, using fallback voice", "err", err)
		return tts.NewFallbackEngine(cfg)
	}
	voices, err := voicepack.Load(cfg.VoicesPath)
	if err != nil {
		session.Close() //nolint:errcheck
		log.Warn("voice archive load failed, using fallback voice", "err", err)
		return tts.NewFallbackEngine(cfg)
	}

	phonemizer := phoneme.NewEspeak(cfg.EspeakBinary)
	if !phonemizer.Available() {
		session.Close() //nolint:errcheck
		log.Warn("espeak-ng not found, using fallback voice", "binary", cfg.EspeakBinary)
		return tts.NewFallbackEngine(cfg)
	}

	return tts.NewEngine(cfg, session, phonemizer, voices)
}

// applyFlags overlays explicitly set command line flags onto the config.
func applyFlags(cfg *tts.Config) {
	flags := rootCmd.Flags()
	if flags.Changed("voice") {
		cfg.Voice = voiceFlag
	}
	if flags.Changed("speed") {
		cfg.Speed = speedFlag
	}
	if flags.Changed("gain") {
		cfg.Gain = gainFlag
	}
	if flags.Changed("lang") {
		cfg.Lang = langFlag
	}
	if flags.Changed("volume") {
		cfg.Volume = volumeFlag
	}
	if debugFlag {
		cfg.Debug = true
	}
}

func execute(cmd *cobra.Command, args []string) error {
	text, fromPipe, err := gatherText(args)
	if err != nil {
		return err
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}
	defer engine.Close() //nolint:errcheck
	cfg := engine.Config()

	if engine.FallbackMode() {
		log.Info("running with fallback voice; synthesis output is a canned clip")
	}

	// File output path: synthesize everything up front and write a WAV.
	if outFile != "" {
		samples, err := engine.Synthesize(text)
		if err != nil {
			return err
		}
		if err := engine.SaveWAV(outFile, samples); err != nil {
			return err
		}
		log.Info("wrote audio", "path", outFile, "samples", len(samples))
		return nil
	}

	player, err := audio.NewPlayer(tts.SampleRate)
	if err != nil {
		return fmt.Errorf("opening audio output: %w", err)
	}
	defer player.Close() //nolint:errcheck
	player.SetVolume(cfg.Volume)

	if streamMode {
		streamer := tts.NewStreamer(engine, player)
		if !fromPipe {
			go streamer.ListenForInterrupt(os.Stdin)
		}
		return streamer.Speak(text)
	}

	samples, err := engine.Synthesize(text)
	if err != nil {
		return err
	}
	return player.Play(samples)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

// setupLog points logging at stderr, or at a debug log file in the cache
// directory when KOKOGO_LOGFILE is set.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	if debugFlag || viper.GetBool("debug") || os.Getenv("KOKOGO_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	if path := os.Getenv("KOKOGO_LOGFILE"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		return f.Close, nil
	}
	return func() error { return nil }, nil
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&voiceFlag, "voice", "v", tts.DefaultVoice, "voice name or weighted mix (e.g. af_sky.8+af_bella.2)")
	rootCmd.Flags().Float64VarP(&speedFlag, "speed", "r", tts.DefaultSpeed, "speech speed multiplier")
	rootCmd.Flags().Float64VarP(&gainFlag, "gain", "g", 1.0, "output gain multiplier")
	rootCmd.Flags().StringVar(&langFlag, "lang", tts.DefaultLang, "phonemizer language")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "", "write a WAV file instead of playing")
	rootCmd.Flags().BoolVarP(&streamMode, "stream", "S", false, "stream playback chunk by chunk (interruptible)")
	rootCmd.Flags().Float64Var(&volumeFlag, "volume", 0.8, "playback volume (0.0 to 2.0)")
	rootCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noDownload, "no-download", false, "never download model files")

	// Config bindings
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("speed", rootCmd.Flags().Lookup("speed"))
	_ = viper.BindPFlag("gain", rootCmd.Flags().Lookup("gain"))
	_ = viper.BindPFlag("lang", rootCmd.Flags().Lookup("lang"))
	_ = viper.BindPFlag("volume", rootCmd.Flags().Lookup("volume"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))

	viper.SetDefault("voice", tts.DefaultVoice)
	viper.SetDefault("speed", tts.DefaultSpeed)
	viper.SetDefault("gain", 1.0)
	viper.SetDefault("volume", 0.8)

	rootCmd.AddCommand(configCmd, voicesCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "kokogo")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "kokogo")}, dirs...)
	}

	if c := os.Getenv("KOKOGO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("kokogo")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("kokogo")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "kokogo.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
