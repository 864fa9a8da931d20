// SPDX-License-Identifier: EPL-2.0

// Command mpgx reads tags from, inspects and decodes MPEG audio files.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/engine/gomp3"
	"github.com/ik5/mpgx/handle"
	"github.com/ik5/mpgx/internal/config"
	"github.com/ik5/mpgx/internal/logging"
)

var (
	logger  zerolog.Logger
	profile *config.Profile
	engines *engine.Registry
)

// Global flags
var (
	profilePath string
	engineName  string
	decoderName string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "mpgx",
	Short:         "Read tags from and decode MPEG audio",
	Long:          "mpgx reads ID3 tags, reports stream formats and decodes MPEG audio to raw PCM, WAV or AIFF.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup()
	},
}

var decodersCmd = &cobra.Command{
	Use:   "decoders",
	Short: "List engines and their decoders",
	Args:  cobra.NoArgs,
	RunE:  runDecoders,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "YAML decoder profile")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", gomp3.Name, "decoding engine")
	rootCmd.PersistentFlags().StringVar(&decoderName, "decoder", "", "decoder name, overrides the profile")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(decodersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the profile and builds the logger and engine registry.
func setup() error {
	var err error
	profile, err = config.Load(profilePath)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	if decoderName != "" {
		profile.Decoder = decoderName
	}
	if verbose {
		profile.Verbose = true
	}

	logger = logging.Setup(profile.Verbose)

	engines = engine.NewRegistry()
	engines.Register(gomp3.Name, gomp3.New(gomp3.WithLogger(logger)))

	logger.Debug().
		Str("profile", profilePath).
		Str("engine", engineName).
		Str("decoder", profile.Decoder).
		Msg("configured")

	return nil
}

func selectedEngine() (engine.Engine, error) {
	eng, ok := engines.Get(engineName)
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (have %v)", engineName, engines.Names())
	}

	return eng, nil
}

// newHandle creates a handle on the selected engine with the profile
// applied.
func newHandle() (*handle.Handle, error) {
	eng, err := selectedEngine()
	if err != nil {
		return nil, err
	}

	h, err := handle.New(eng, handle.WithDecoder(profile.Decoder), handle.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if err := profile.Apply(h); err != nil {
		h.Destroy()
		return nil, fmt.Errorf("apply profile: %w", err)
	}

	return h, nil
}

func runDecoders(cmd *cobra.Command, _ []string) error {
	for _, name := range engines.Names() {
		eng, _ := engines.Get(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, eng.Decoders())
	}

	return nil
}
