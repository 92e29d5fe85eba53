// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ha1tch/flowermap/pkg/config"
)

var levels = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
}

// Level maps a level name to a zerolog level; unknown names give info.
func Level(name string) zerolog.Level {
	if l, ok := levels[strings.ToUpper(name)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
}

// Setup points the global logger at cfg.File when set, otherwise at stderr:
// human-readable on a terminal, JSON when redirected. The returned func
// closes the log file and is never nil.
func Setup(cfg config.LogConfig) (func(), error) {
	zerolog.SetGlobalLevel(Level(cfg.Level))

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return func() {}, fmt.Errorf("error opening log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return func() { _ = f.Close() }, nil
	}

	if isTerminal(os.Stderr) {
		log.Logger = log.Output(consoleWriter(os.Stderr))
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return func() {}, nil
}

// Discard silences the global logger, for surfaces that own the terminal
// and have no log file.
func Discard() {
	log.Logger = zerolog.Nop()
}
