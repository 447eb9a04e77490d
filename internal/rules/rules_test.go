package rules

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairrps/internal/moves"
)

func newResolver(t *testing.T, names ...string) *Resolver {
	t.Helper()
	r, err := New(moves.MustNew(names...))
	require.NoError(t, err)
	return r
}

func namedSet(n int) *moves.Set {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("m%d", i)
	}
	return moves.MustNew(names...)
}

func TestRockPaperScissors(t *testing.T) {
	r := newResolver(t, "Rock", "Paper", "Scissors")

	beats := map[string]string{
		"Rock":     "Scissors",
		"Scissors": "Paper",
		"Paper":    "Rock",
	}
	for winner, loser := range beats {
		out, err := r.Determine(winner, loser)
		require.NoError(t, err)
		assert.Equal(t, FirstWins, out.Result, "%s vs %s", winner, loser)
		assert.Equal(t, fmt.Sprintf("%s wins against %s", winner, loser), out.String())

		out, err = r.Determine(loser, winner)
		require.NoError(t, err)
		assert.Equal(t, SecondWins, out.Result, "%s vs %s", loser, winner)
		assert.Equal(t, winner, out.Winner())
		assert.Equal(t, loser, out.Loser())
	}

	for _, m := range []string{"Rock", "Paper", "Scissors"} {
		out, err := r.Determine(m, m)
		require.NoError(t, err)
		assert.Equal(t, Draw, out.Result)
		assert.Equal(t, "Draw", out.String())
		assert.Empty(t, out.Winner())
		assert.Empty(t, out.Loser())
	}
}

func TestRockPaperScissorsLizardSpock(t *testing.T) {
	names := []string{"Rock", "Paper", "Scissors", "Lizard", "Spock"}
	r := newResolver(t, names...)

	for i, m := range names {
		for _, off := range []int{1, 2} {
			stronger := names[(i+off)%5]
			out, err := r.Determine(m, stronger)
			require.NoError(t, err)
			assert.Equal(t, stronger, out.Winner(), "%s should lose to %s", m, stronger)

			weaker := names[(i-off+5)%5]
			out, err = r.Determine(m, weaker)
			require.NoError(t, err)
			assert.Equal(t, m, out.Winner(), "%s should beat %s", m, weaker)
		}
	}
}

func TestUnknownMove(t *testing.T) {
	r := newResolver(t, "Rock", "Paper", "Scissors")

	_, err := r.Determine("Rock", "Well")
	var unknown *UnknownMoveError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Well", unknown.Move)

	_, err = r.Determine("rock", "Paper")
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "rock", unknown.Move)

	_, err = r.DetermineIndex(0, 3)
	require.ErrorAs(t, err, &unknown)
	_, err = r.DetermineIndex(-1, 0)
	require.ErrorAs(t, err, &unknown)
}

func TestNewRejectsNil(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, moves.ErrNoMoves)
}

func TestExactlyOneWinnerProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	// Odd sizes from 3 to 51.
	oddSize := gen.IntRange(1, 25).Map(func(k int) int { return 2*k + 1 })

	properties.Property("distinct pairs have exactly one winner", prop.ForAll(
		func(n, a, b int) bool {
			i, j := a%n, b%n
			if i == j {
				return true
			}
			r, err := New(namedSet(n))
			if err != nil {
				return false
			}
			ab, err1 := r.DetermineIndex(i, j)
			ba, err2 := r.DetermineIndex(j, i)
			if err1 != nil || err2 != nil {
				return false
			}
			firstWinsAB := ab == FirstWins
			firstWinsBA := ba == FirstWins
			return firstWinsAB != firstWinsBA && ab != Draw && ba != Draw
		},
		oddSize,
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("every move draws with itself", prop.ForAll(
		func(n, a int) bool {
			set := namedSet(n)
			r, err := New(set)
			if err != nil {
				return false
			}
			m := set.Name(a % n)
			out, err := r.Determine(m, m)
			return err == nil && out.Result == Draw
		},
		oddSize,
		gen.IntRange(0, 1000),
	))

	properties.Property("each move beats exactly half the others", prop.ForAll(
		func(n, a int) bool {
			r, err := New(namedSet(n))
			if err != nil {
				return false
			}
			i := a % n
			wins := 0
			for j := range n {
				if res, _ := r.DetermineIndex(i, j); res == FirstWins {
					wins++
				}
			}
			return wins == n/2
		},
		oddSize,
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "draw", Draw.String())
	assert.Equal(t, "first-wins", FirstWins.String())
	assert.Equal(t, "second-wins", SecondWins.String())
	assert.Equal(t, "Result(9)", Result(9).String())
}
