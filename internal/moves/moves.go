// Package moves holds the validated, ordered move set a game is played with.
//
// The order of the set is significant: it defines the circular adjacency the
// rules package uses to decide which move beats which.
package moves

import (
	"errors"
	"fmt"
)

// MinMoves is the smallest playable move set.
const MinMoves = 3

var (
	ErrNoMoves       = errors.New("moves: no moves provided")
	ErrTooFewMoves   = errors.New("moves: at least 3 moves are required")
	ErrEvenMoves     = errors.New("moves: the number of moves must be odd")
	ErrDuplicateMove = errors.New("moves: moves must be unique")
)

// ValidationError reports why a list of names cannot form a move set.
type ValidationError struct {
	Reason error
	Count  int
	Move   string // offending name for duplicates
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrDuplicateMove) && e.Move != "":
		return fmt.Sprintf("%v (%q appears more than once)", e.Reason, e.Move)
	case errors.Is(e.Reason, ErrTooFewMoves), errors.Is(e.Reason, ErrEvenMoves):
		return fmt.Sprintf("%v, got %d", e.Reason, e.Count)
	default:
		return e.Reason.Error()
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Set is an immutable ordered list of distinct move names.
type Set struct {
	names []string
	index map[string]int
}

// New validates names and builds a Set. Names are compared case-sensitively.
func New(names []string) (*Set, error) {
	if err := Validate(names); err != nil {
		return nil, err
	}

	s := &Set{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(s.names, names)
	for i, name := range s.names {
		s.index[name] = i
	}
	return s, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// fixed tables.
func MustNew(names ...string) *Set {
	s, err := New(names)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the move set invariants without building a Set.
func Validate(names []string) error {
	if len(names) == 0 {
		return &ValidationError{Reason: ErrNoMoves}
	}
	if len(names) < MinMoves {
		return &ValidationError{Reason: ErrTooFewMoves, Count: len(names)}
	}
	if len(names)%2 == 0 {
		return &ValidationError{Reason: ErrEvenMoves, Count: len(names)}
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return &ValidationError{Reason: ErrDuplicateMove, Count: len(names), Move: name}
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Len returns the number of moves.
func (s *Set) Len() int {
	return len(s.names)
}

// Name returns the move at index i.
func (s *Set) Name(i int) string {
	return s.names[i]
}

// Index returns the position of name, or false if it is not in the set.
func (s *Set) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns a copy of the ordered move names.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
