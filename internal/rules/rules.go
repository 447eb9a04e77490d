// Package rules decides rounds of generalised rock-paper-scissors.
//
// With N moves (N odd), each move beats the N/2 moves that precede it in the
// circular order and loses to the N/2 moves that follow it. For the classic
// Rock, Paper, Scissors ordering that means Paper beats Rock, Scissors beats
// Paper and Rock beats Scissors.
package rules

import (
	"fmt"

	"github.com/lox/fairrps/internal/moves"
)

// Result is the verdict for an ordered pair of moves.
type Result int

const (
	Draw Result = iota
	FirstWins
	SecondWins
)

func (r Result) String() string {
	switch r {
	case Draw:
		return "draw"
	case FirstWins:
		return "first-wins"
	case SecondWins:
		return "second-wins"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Outcome is a decided pair of moves.
type Outcome struct {
	Result Result
	First  string
	Second string
}

// Winner returns the winning move, or "" for a draw.
func (o Outcome) Winner() string {
	switch o.Result {
	case FirstWins:
		return o.First
	case SecondWins:
		return o.Second
	}
	return ""
}

// Loser returns the losing move, or "" for a draw.
func (o Outcome) Loser() string {
	switch o.Result {
	case FirstWins:
		return o.Second
	case SecondWins:
		return o.First
	}
	return ""
}

// String renders the outcome line shown to the player.
func (o Outcome) String() string {
	if o.Result == Draw {
		return "Draw"
	}
	return fmt.Sprintf("%s wins against %s", o.Winner(), o.Loser())
}

// UnknownMoveError is returned when a move is not part of the resolver's set.
// Callers that map menu indices onto the set should never see it.
type UnknownMoveError struct {
	Move string
}

func (e *UnknownMoveError) Error() string {
	return fmt.Sprintf("rules: unknown move %q", e.Move)
}

// Resolver decides outcomes for one move set.
type Resolver struct {
	set  *moves.Set
	half int
}

// New creates a resolver. The set is re-checked so a resolver can never be
// built over an even or undersized list.
func New(set *moves.Set) (*Resolver, error) {
	if set == nil {
		return nil, &moves.ValidationError{Reason: moves.ErrNoMoves}
	}
	if err := moves.Validate(set.Names()); err != nil {
		return nil, err
	}
	return &Resolver{set: set, half: set.Len() / 2}, nil
}

// Moves returns the set the resolver was built with.
func (r *Resolver) Moves() *moves.Set {
	return r.set
}

// Determine decides a against b.
func (r *Resolver) Determine(a, b string) (Outcome, error) {
	i, ok := r.set.Index(a)
	if !ok {
		return Outcome{}, &UnknownMoveError{Move: a}
	}
	j, ok := r.set.Index(b)
	if !ok {
		return Outcome{}, &UnknownMoveError{Move: b}
	}
	return Outcome{Result: r.compare(i, j), First: a, Second: b}, nil
}

// DetermineIndex decides the move at index i against the move at index j.
func (r *Resolver) DetermineIndex(i, j int) (Result, error) {
	n := r.set.Len()
	if i < 0 || i >= n {
		return Draw, &UnknownMoveError{Move: fmt.Sprintf("#%d", i)}
	}
	if j < 0 || j >= n {
		return Draw, &UnknownMoveError{Move: fmt.Sprintf("#%d", j)}
	}
	return r.compare(i, j), nil
}

func (r *Resolver) compare(i, j int) Result {
	if i == j {
		return Draw
	}
	n := r.set.Len()
	if d := ((j-i)%n + n) % n; d <= r.half {
		return SecondWins
	}
	return FirstWins
}
