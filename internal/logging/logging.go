// SPDX-License-Identifier: EPL-2.0

// Package logging configures zerolog for the command line tool.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup logs to stderr, keeping stdout free for decoded audio.
func Setup(verbose bool) zerolog.Logger {
	return SetupWithWriter(verbose, os.Stderr)
}

// SetupWithWriter builds a console logger on w and installs it as the
// global logger. Verbose lowers the level to debug.
func SetupWithWriter(verbose bool, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, NoColor: w != os.Stderr}

	logger := zerolog.New(console).With().Timestamp().Logger().Level(level)
	log.Logger = logger

	return logger
}
