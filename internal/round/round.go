// Package round runs one round of the fair commitment protocol.
//
// A Round is an explicit state machine:
//
//	Idle -> Committed -> AwaitingChoice -> Resolved -> Terminal
//	                          |     \
//	                          |      +-> Exit
//	                          +-> Idle (invalid input, fresh commitment)
//
// The opponent's key and move stay private until the human has chosen; only
// the digest is exposed while the round is open.
package round

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/fairrps/internal/commit"
	"github.com/lox/fairrps/internal/moves"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/rules"
)

// ExitChoice is the menu entry that leaves the game.
const ExitChoice = "0"

// State is a phase of a round.
type State int

const (
	Idle State = iota
	Committed
	AwaitingChoice
	Resolved
	Terminal
	Exit
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Committed:
		return "committed"
	case AwaitingChoice:
		return "awaiting-choice"
	case Resolved:
		return "resolved"
	case Terminal:
		return "terminal"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrInternal marks invariant violations such as a menu choice that does
	// not map onto the move set.
	ErrInternal = errors.New("round: internal error")
)

// StateError is returned when an operation is attempted in the wrong state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("round: cannot %s in state %s", e.Op, e.State)
}

// InvalidInputError reports a menu selection that is neither the exit choice
// nor a move number. The round is back in Idle when this is returned.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("round: invalid selection %q", e.Input)
}

// Options is the context a round runs with.
type Options struct {
	Moves   *moves.Set
	Keys    io.Reader       // key material; nil uses crypto/rand
	Picker  randutil.Picker // opponent move choice; nil uses the CSPRNG
	KeyBits int             // 0 uses commit.DefaultKeyBits
	Logger  *log.Logger
}

// MenuItem is one selectable line of the menu.
type MenuItem struct {
	Choice string
	Label  string
}

func (m MenuItem) String() string {
	return fmt.Sprintf("%s - %s", m.Choice, m.Label)
}

// Report is everything revealed once the human has chosen.
type Report struct {
	HumanMove    string
	OpponentMove string
	Key          string
	Digest       string
	Outcome      rules.Outcome
}

// Verify recomputes the digest from the revealed key and opponent move.
func (r *Report) Verify() bool {
	return commit.Verify(r.Key, r.OpponentMove, r.Digest)
}

// Round holds the state of a single round.
type Round struct {
	opts       Options
	resolver   *rules.Resolver
	logger     *log.Logger
	state      State
	commitment *commit.Commitment
	commits    int
}

// New validates opts and returns a round in Idle.
func New(opts Options) (*Round, error) {
	resolver, err := rules.New(opts.Moves)
	if err != nil {
		return nil, err
	}
	if opts.KeyBits == 0 {
		opts.KeyBits = commit.DefaultKeyBits
	}
	if err := commit.ValidateKeyBits(opts.KeyBits); err != nil {
		return nil, err
	}
	if opts.Picker == nil {
		opts.Picker = randutil.NewCrypto()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Round{
		opts:     opts,
		resolver: resolver,
		logger:   logger.WithPrefix("round"),
		state:    Idle,
	}, nil
}

// State returns the current phase.
func (r *Round) State() State {
	return r.state
}

// Commits returns how many commitments this round has generated.
func (r *Round) Commits() int {
	return r.commits
}

// Commit picks the opponent's move, commits to it and returns the digest.
func (r *Round) Commit() (string, error) {
	if r.state != Idle {
		return "", &StateError{Op: "commit", State: r.state}
	}

	set := r.opts.Moves
	move := set.Name(r.opts.Picker.IntN(set.Len()))

	c, err := commit.New(r.opts.Keys, r.opts.KeyBits, move)
	if err != nil {
		return "", fmt.Errorf("failed to commit opponent move: %w", err)
	}

	r.commitment = c
	r.commits++
	r.state = Committed
	r.logger.Debug("Committed opponent move", "commit", r.commits, "digest", c.Digest)
	return c.Digest, nil
}

// Digest returns the published digest, or "" before Commit.
func (r *Round) Digest() string {
	if r.commitment == nil {
		return ""
	}
	return r.commitment.Digest
}

// Menu returns the numbered moves followed by the exit entry and moves the
// round to AwaitingChoice.
func (r *Round) Menu() ([]MenuItem, error) {
	if r.state != Committed && r.state != AwaitingChoice {
		return nil, &StateError{Op: "show menu", State: r.state}
	}

	names := r.opts.Moves.Names()
	items := make([]MenuItem, 0, len(names)+1)
	for i, name := range names {
		items = append(items, MenuItem{Choice: strconv.Itoa(i + 1), Label: name})
	}
	items = append(items, MenuItem{Choice: ExitChoice, Label: "Exit"})

	r.state = AwaitingChoice
	return items, nil
}

// Choose applies the human's menu selection.
//
// The exit choice moves the round to Exit and returns a nil report. A move
// number resolves the round and returns the revealed report. Anything else
// discards the commitment, returns the round to Idle and reports an
// *InvalidInputError; the caller must Commit again.
func (r *Round) Choose(input string) (*Report, error) {
	if r.state != AwaitingChoice {
		return nil, &StateError{Op: "choose", State: r.state}
	}

	selection := strings.TrimSpace(input)
	if selection == ExitChoice {
		r.logger.Debug("Human chose to exit")
		r.commitment = nil
		r.state = Exit
		return nil, nil
	}

	n, err := strconv.Atoi(selection)
	if err != nil || n < 1 || n > r.opts.Moves.Len() {
		r.logger.Debug("Invalid selection, discarding commitment", "input", selection)
		r.commitment = nil
		r.state = Idle
		return nil, &InvalidInputError{Input: selection}
	}

	human := r.opts.Moves.Name(n - 1)
	c := r.commitment
	r.state = Resolved

	outcome, err := r.resolver.Determine(human, c.Move)
	r.commitment = nil
	r.state = Terminal
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	r.logger.Debug("Round resolved",
		"human", human,
		"opponent", c.Move,
		"result", outcome.Result)

	return &Report{
		HumanMove:    human,
		OpponentMove: c.Move,
		Key:          c.Key,
		Digest:       c.Digest,
		Outcome:      outcome,
	}, nil
}
