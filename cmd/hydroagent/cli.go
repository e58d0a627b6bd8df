package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Hunts  hydroagent.HuntService
	Hunter hydroagent.Hunter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFile  string `type:"path" help:"Write logs to a rotating file instead of stderr"`

	Hunt    HuntCmd    `cmd:"" help:"Find the latest annual report and GSP for basins"`
	History HistoryCmd `cmd:"" help:"Show previous hunts"`
}

// HuntCmd is the "hunt" subcommand.
type HuntCmd struct {
	Identifiers   []string      `arg:"" name:"identifier" help:"Basin code (e.g. 3-001) or name fragment"`
	Format        string        `short:"o" default:"text" enum:"text,json,markdown" help:"Output format (text, json, markdown)"`
	Concurrency   int           `short:"c" default:"2" help:"Concurrent queries"`
	Rate          float64       `default:"1" help:"Max query starts per second (0 disables)"`
	Retries       int           `default:"0" help:"Retries for timed out or crashed queries"`
	Probe         bool          `help:"Check content types when the report link has no document hint"`
	FollowPlan    bool          `help:"Follow the GSP link to its first document"`
	DetailTimeout time.Duration `default:"60s" help:"Bound on loading a basin detail page"`
	Headful       bool          `help:"Show the browser window"`
	NoSave        bool          `help:"Do not record hunts in the history"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Identifier string `short:"i" help:"Only hunts for this identifier"`
	Limit      int    `short:"n" default:"20" help:"Maximum hunts to show (0 for all)"`
	Format     string `short:"o" default:"text" enum:"text,json,markdown" help:"Output format (text, json, markdown)"`
}

// reportedError marks an error a command has already printed to stderr.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether a command already printed err, so main must not
// print it again.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
