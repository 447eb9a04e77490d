package round

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// ErrInputTimeout is reported when the human does not answer in time.
var ErrInputTimeout = errors.New("round: timed out waiting for input")

// ExitReason explains how a game ended without an outcome.
type ExitReason string

const (
	ExitChosen    ExitReason = "exit-chosen"
	ExitEOF       ExitReason = "end-of-input"
	ExitTimeout   ExitReason = "timeout"
	ExitCancelled ExitReason = "cancelled"
)

// Console is the line-based I/O a game talks to.
type Console struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// GameOptions configures the console driver.
type GameOptions struct {
	Options
	Console      Console
	InputTimeout time.Duration // zero waits forever
	Clock        quartz.Clock
}

// Result summarises a finished game.
type Result struct {
	Report   *Report // nil when the game ended without a choice
	Exited   bool
	Reason   ExitReason
	Attempts int
}

// Game drives a Round over a console.
type Game struct {
	opts   GameOptions
	round  *Round
	logger *log.Logger
}

// NewGame builds a console game.
func NewGame(opts GameOptions) (*Game, error) {
	r, err := New(opts.Options)
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Console.Out == nil {
		opts.Console.Out = io.Discard
	}
	if opts.Console.Err == nil {
		opts.Console.Err = opts.Console.Out
	}
	if opts.Console.In == nil {
		opts.Console.In = eofReader{}
	}
	return &Game{opts: opts, round: r, logger: r.logger}, nil
}

// Round exposes the underlying state machine.
func (g *Game) Round() *Round {
	return g.round
}

// Play runs the round until it resolves or the human leaves. Invalid input
// restarts from Idle with a new commitment. End of input, cancellation of ctx
// and the input timeout all end the game as an exit.
func (g *Game) Play(ctx context.Context) (*Result, error) {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(g.opts.Console.In, done)

	out := g.opts.Console.Out
	res := &Result{}

	for {
		digest, err := g.round.Commit()
		if err != nil {
			return nil, err
		}
		res.Attempts = g.round.Commits()

		items, err := g.round.Menu()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "HMAC: %s\n", digest)
		fmt.Fprintln(out, "Menu:")
		for _, item := range items {
			fmt.Fprintln(out, item)
		}

		line, err := g.prompt(ctx, lines, "Enter your move: ")
		if err != nil {
			reason, ok := exitReason(err)
			if !ok {
				return nil, err
			}
			fmt.Fprintln(out)
			g.logger.Info("Leaving game without a choice", "reason", reason)
			res.Exited, res.Reason = true, reason
			return res, nil
		}

		report, err := g.round.Choose(line)
		var invalid *InvalidInputError
		switch {
		case errors.As(err, &invalid):
			fmt.Fprintln(out)
			fmt.Fprintln(g.opts.Console.Err, "Invalid input. Please try again.")
			continue
		case err != nil:
			return nil, err
		case report == nil:
			fmt.Fprintln(out, "Exiting...")
			res.Exited, res.Reason = true, ExitChosen
			return res, nil
		}

		fmt.Fprintf(out, "Your move: %s\n", report.HumanMove)
		fmt.Fprintf(out, "Computer's move: %s\n", report.OpponentMove)
		fmt.Fprintf(out, "Key: %s\n", report.Key)
		fmt.Fprintln(out, report.Outcome)
		res.Report = report
		return res, nil
	}
}

func exitReason(err error) (ExitReason, bool) {
	switch {
	case errors.Is(err, io.EOF):
		return ExitEOF, true
	case errors.Is(err, ErrInputTimeout):
		return ExitTimeout, true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCancelled, true
	}
	return "", false
}

// prompt arms the timeout, writes the prompt and waits for one line.
func (g *Game) prompt(ctx context.Context, lines <-chan lineResult, text string) (string, error) {
	var expired <-chan struct{}
	if g.opts.InputTimeout > 0 {
		fired := make(chan struct{})
		timer := g.opts.Clock.AfterFunc(g.opts.InputTimeout, func() {
			close(fired)
		}, "round", "prompt")
		defer timer.Stop()
		expired = fired
	}

	fmt.Fprint(g.opts.Console.Out, text)

	select {
	case res, ok := <-lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	case <-expired:
		g.logger.Warn("Input timeout", "timeout", g.opts.InputTimeout)
		return "", ErrInputTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type lineResult struct {
	line string
	err  error
}

// readLines scans r on its own goroutine so a blocked read can be abandoned.
func readLines(r io.Reader, done <-chan struct{}) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- lineResult{line: scanner.Text()}:
			case <-done:
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case ch <- lineResult{err: err}:
		case <-done:
		}
	}()
	return ch
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
