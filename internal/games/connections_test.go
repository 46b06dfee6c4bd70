package games

import (
	"errors"
	"testing"
)

func TestConnectionsPerfectPurpleFirst(t *testing.T) {
	g := newConnections()
	m, err := g.Match("Connections\nPuzzle #543\n🟪🟪🟪🟪\n🟩🟩🟩🟩\n🟨🟨🟨🟨\n🟦🟦🟦🟦")
	if err != nil { t.Fatalf("Match: %v", err) }
	if m == nil { t.Fatalf("expected match") }
	r := g.Score(m)
	// 2 (purple first) + 4+2+1+3 + 5 (clean finish)
	if r.TotalScore != 17 { t.Fatalf("total score: got %d, want 17", r.TotalScore) }
	if !r.SolvedPurpleFirst || r.SolvedBlueFirst { t.Fatalf("first-group flags wrong") }
	if !r.Finished || r.Mistakes != 0 { t.Fatalf("finished=%v mistakes=%d", r.Finished, r.Mistakes) }
}

func TestConnectionsMistakesSubtract(t *testing.T) {
	g := newConnections()
	m, err := g.Match("Connections\nPuzzle #600\n🟦🟦🟦🟦\n🟨🟩🟨🟨\n🟨🟨🟨🟨\n🟩🟩🟩🟩\n🟪🟪🟪🟪")
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	r := g.Score(m)
	// 1 (blue first) + 3+1+2+4 − 1 mistake
	if r.TotalScore != 10 { t.Fatalf("total score: got %d, want 10", r.TotalScore) }
	if !r.SolvedBlueFirst { t.Fatalf("blue-first bonus not applied") }
	if r.Mistakes != 1 || r.Guesses != 5 { t.Fatalf("mistakes=%d guesses=%d", r.Mistakes, r.Guesses) }
}

func TestConnectionsUnfinished(t *testing.T) {
	g := newConnections()
	m, err := g.Match("Connections\nPuzzle #601\n🟨🟨🟨🟨\n🟩🟨🟦🟪\n🟩🟨🟦🟪\n🟩🟨🟦🟪\n🟩🟨🟦🟪")
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	r := g.Score(m)
	if r.Finished || r.Solved { t.Fatalf("four misses must not finish the puzzle") }
	if r.CorrectGroups != 1 || r.Mistakes != 4 { t.Fatalf("correct=%d mistakes=%d", r.CorrectGroups, r.Mistakes) }
	// 1 (yellow) − 4 mistakes
	if r.TotalScore != -3 { t.Fatalf("total score: got %d, want -3", r.TotalScore) }
}

func TestConnectionsTrailingCommentaryIgnored(t *testing.T) {
	g := newConnections()
	m, err := g.Match("Connections\nPuzzle #602\n🟪🟪🟪🟪\n🟦🟦🟦🟦\n🟩🟩🟩🟩\n🟨🟨🟨🟨\nso close to a reverse rainbow!")
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	r := g.Score(m)
	if r.Mistakes != 0 { t.Fatalf("commentary counted as mistakes: %d", r.Mistakes) }
	if r.Guesses != 4 { t.Fatalf("guesses: got %d, want 4", r.Guesses) }
}

func TestConnectionsHeaderMismatchIsFormatError(t *testing.T) {
	g := newConnections()
	_, err := g.Match("Check this out!\nConnections\nPuzzle #543\n🟪🟪🟪🟪")
	var fe *FormatError
	if !errors.As(err, &fe) { t.Fatalf("expected FormatError, got %v", err) }
	if fe.Game != Connections { t.Fatalf("wrong game in FormatError: %s", fe.Game) }
}

func TestConnectionsChattyMentionIsNoMatch(t *testing.T) {
	g := newConnections()
	m, err := g.Match("anyone playing connections today?")
	if err != nil { t.Fatalf("Match: %v", err) }
	if m != nil { t.Fatalf("mention without grid must not match") }
}
