// Package matrix renders the full outcome table for a move set.
package matrix

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/fairrps/internal/rules"
)

// Corner is the header of the row-label column.
const Corner = "v PC/User >"

// Verdict is an outcome from the row move's point of view.
type Verdict string

const (
	Win  Verdict = "Win"
	Lose Verdict = "Lose"
	Draw Verdict = "Draw"
)

// Grid holds the verdict of every row move against every column move.
type Grid struct {
	Moves []string
	Cells [][]Verdict
}

// Build evaluates every ordered pair of moves with r.
func Build(r *rules.Resolver) Grid {
	set := r.Moves()
	n := set.Len()

	g := Grid{
		Moves: set.Names(),
		Cells: make([][]Verdict, n),
	}
	for row := range n {
		g.Cells[row] = make([]Verdict, n)
		for col := range n {
			// Indices come from the resolver's own set, so this cannot fail.
			res, _ := r.DetermineIndex(row, col)
			g.Cells[row][col] = verdictFor(res)
		}
	}
	return g
}

func verdictFor(res rules.Result) Verdict {
	switch res {
	case rules.FirstWins:
		return Win
	case rules.SecondWins:
		return Lose
	default:
		return Draw
	}
}

// Styles controls how verdicts and headers are coloured.
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Win    lipgloss.Style
	Lose   lipgloss.Style
	Draw   lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns the colours used on a terminal.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Lose: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Draw: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// PlainStyles returns unstyled rendering, used for --no-color and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Header: plain, Label: plain, Win: plain, Lose: plain, Draw: plain, Border: plain}
}

func (s Styles) verdict(v Verdict) lipgloss.Style {
	switch v {
	case Win:
		return s.Win
	case Lose:
		return s.Lose
	default:
		return s.Draw
	}
}

// Render draws the grid as a bordered table.
func (g Grid) Render(styles Styles) string {
	headers := append([]string{Corner}, g.Moves...)
	for i, h := range headers {
		headers[i] = styles.Header.Render(h)
	}

	rows := make([][]string, len(g.Cells))
	for r, cells := range g.Cells {
		row := make([]string, 0, len(cells)+1)
		row = append(row, styles.Label.Render(g.Moves[r]))
		for _, v := range cells {
			row = append(row, styles.verdict(v).Render(string(v)))
		}
		rows[r] = row
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cell
		})
	return t.Render()
}
