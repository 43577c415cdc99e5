// Package cmd implements the dripsim CLI application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/drip/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are all the dripsim subcommands.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&fetchCmd{},
	&commissionCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

const (
	EnvLogLevel    = "DRIP_LOG_LEVEL"
	EnvEodhdAPIKey = "EODHD_API_KEY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error, off). Defaults to the "+EnvLogLevel+" environment variable, or info.")
var logPretty = flag.Bool("log-pretty", true, "Log in a human friendly format instead of JSON.")
var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching market data from EODHD.com.\n If missing it will read for the environment variable \""+EnvEodhdAPIKey+"\". You can get one at https://eodhd.com/")

// newLogger returns the application logger, configured by flags and environment.
func newLogger() (zerolog.Logger, error) {
	level := *logLevel
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	return logger.New(logger.Config{Level: level, Pretty: *logPretty})
}

// eodhdAPIKey retrieves the EODHD API key from the command-line flag or the environment variable.
// It prioritizes the flag over the environment variable.
func eodhdAPIKey() string {
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(EnvEodhdAPIKey)
	}
	return *eodhdAPIFlag
}

// printMarkdown renders markdown for the terminal, falling back to raw markdown.
func printMarkdown(w io.Writer, md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

// stdout returns w, or os.Stdout if w is nil.
func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
