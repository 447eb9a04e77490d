package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/fairrps/internal/moves"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Play   PlayCmd   `cmd:"" default:"withargs" help:"Play one provably fair round (default). Use 'play' explicitly when the first move is named play, help, table or verify"`
	Help   HelpCmd   `cmd:"" aliases:"table" help:"Print the win/lose/draw table for a move set"`
	Verify VerifyCmd `cmd:"" help:"Check a revealed key and move against a published HMAC"`
}

// Streams are the process streams commands read and write.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// exitCodeError ends the process with a specific code and no extra message.
type exitCodeError int

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type kongExit int

func main() {
	os.Exit(run(os.Args[1:], Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}))
}

func run(args []string, streams Streams) (code int) {
	defer func() {
		if r := recover(); r != nil {
			exit, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			code = int(exit)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("fairrps"),
		kong.Description("Provably fair rock-paper-scissors with any odd number of moves.\n\n"+
			"The command names play, help, table and verify are reserved as a first argument; "+
			"prefix the moves with 'play' to use one of them as a move name."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Writers(streams.Out, streams.Err),
		kong.Exit(func(code int) {
			panic(kongExit(code))
		}),
	)
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %s\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %s\n", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(false)
		}
		return 1
	}

	err = ctx.Run(&cli.Globals, &streams)
	var exitErr exitCodeError
	var verr *moves.ValidationError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return int(exitErr)
	case errors.As(err, &verr):
		fmt.Fprintf(streams.Err, "Error: %s\n", verr)
		_ = ctx.PrintUsage(false)
		return 1
	default:
		fmt.Fprintf(streams.Err, "Error: %s\n", err)
		return 1
	}
}
