package main

import (
	"fmt"

	"github.com/lox/fairrps/internal/commit"
)

type VerifyCmd struct {
	Key    string `required:"" help:"Revealed key"`
	Move   string `required:"" help:"Revealed computer move"`
	Digest string `required:"" name:"hmac" help:"HMAC published before you chose"`
}

func (c *VerifyCmd) Run(streams *Streams) error {
	if !commit.Verify(c.Key, c.Move, c.Digest) {
		fmt.Fprintln(streams.Out, "Mismatch")
		fmt.Fprintf(streams.Out, "Expected HMAC: %s\n", commit.ComputeDigest(c.Key, c.Move))
		return exitCodeError(1)
	}
	fmt.Fprintln(streams.Out, "Verified")
	return nil
}
