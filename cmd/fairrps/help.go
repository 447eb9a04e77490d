package main

import (
	"fmt"

	"github.com/lox/fairrps/internal/matrix"
	"github.com/lox/fairrps/internal/moves"
	"github.com/lox/fairrps/internal/rules"
)

type HelpCmd struct {
	Moves []string `arg:"" name:"moves" help:"Ordered move names; odd count, at least 3, no duplicates"`
}

func (c *HelpCmd) Run(g *Globals, streams *Streams) error {
	set, err := moves.New(c.Moves)
	if err != nil {
		return err
	}
	resolver, err := rules.New(set)
	if err != nil {
		return err
	}

	styles := matrix.DefaultStyles()
	if g.NoColor {
		styles = matrix.PlainStyles()
	}

	fmt.Fprintln(streams.Out, "Results are shown from the row move's point of view:")
	fmt.Fprintln(streams.Out, matrix.Build(resolver).Render(styles))
	return nil
}
