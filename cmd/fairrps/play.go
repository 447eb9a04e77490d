package main

import (
	"context"
	"time"

	"github.com/lox/fairrps/internal/moves"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/round"
	"github.com/lox/fairrps/internal/tui"
)

type PlayCmd struct {
	Moves   []string      `arg:"" name:"moves" help:"Ordered move names; odd count, at least 3, no duplicates"`
	KeyBits int           `help:"HMAC key length in bits (default 256)" env:"FAIRRPS_KEY_BITS"`
	Timeout time.Duration `help:"Give up waiting for a move after this long (0 waits forever)" env:"FAIRRPS_TIMEOUT"`
	Seed    int64         `help:"Seed the computer's move choice; keys always come from the OS"`
	TUI     bool          `name:"tui" help:"Play in a full-screen terminal UI"`
}

func (c *PlayCmd) Run(g *Globals, streams *Streams) error {
	set, err := moves.New(c.Moves)
	if err != nil {
		return err
	}

	cfg, logger, cleanup, err := g.setup(streams)
	if err != nil {
		return err
	}
	defer cleanup()

	keyBits := cfg.Game.KeyBits
	if c.KeyBits != 0 {
		keyBits = c.KeyBits
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	if c.Timeout != 0 {
		timeout = c.Timeout
	}
	seed := cfg.Game.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}

	opts := round.Options{
		Moves:   set,
		KeyBits: keyBits,
		Logger:  logger,
	}
	if seed != 0 {
		logger.Warn("Computer moves are seeded and therefore predictable", "seed", seed)
		opts.Picker = randutil.New(seed)
	}

	ctx, stop := signalContext(context.Background(), logger)
	defer stop()

	logger.Debug("Starting game", "moves", set.Len(), "key_bits", keyBits, "timeout", timeout)

	if c.TUI {
		r, err := round.New(opts)
		if err != nil {
			return err
		}
		_, err = tui.Run(ctx, r, logger, streams.In, streams.Out)
		return err
	}

	game, err := round.NewGame(round.GameOptions{
		Options:      opts,
		Console:      round.Console{In: streams.In, Out: streams.Out, Err: streams.Err},
		InputTimeout: timeout,
	})
	if err != nil {
		return err
	}

	res, err := game.Play(ctx)
	if err != nil {
		return err
	}
	if res.Report != nil {
		logger.Info("Round finished",
			"attempts", res.Attempts,
			"outcome", res.Report.Outcome.String())
	} else {
		logger.Info("Game ended without a move", "reason", res.Reason, "attempts", res.Attempts)
	}
	return nil
}
