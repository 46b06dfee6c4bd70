package games

import "testing"

const wordleShareText = "Wordle 1,293 3/6\n\n⬜🟨⬜⬜⬜\n🟩🟩⬜🟨⬜\n🟩🟩🟩🟩🟩\n\nSkill 40/99 Luck 10/99"

func TestWordleMatchBasics(t *testing.T) {
	g := newWordle()
	m, err := g.Match(wordleShareText)
	if err != nil { t.Fatalf("Match: %v", err) }
	if m == nil { t.Fatalf("expected match") }
	if m.PuzzleIndex != 1293 { t.Fatalf("puzzle index: got %d, want 1293 (comma stripped)", m.PuzzleIndex) }
	if m.Field("attempts", "") != "3" { t.Fatalf("attempts field: %q", m.Field("attempts", "")) }
	if m.Field("skill", "") != "40" || m.Field("luck", "") != "10" { t.Fatalf("skill/luck fields missing") }
}

func TestWordleScoreTierSkillLuck(t *testing.T) {
	g := newWordle()
	m, err := g.Match(wordleShareText)
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	r := g.Score(m)
	// 3 attempts → 60, plus skill 40, minus luck 10
	if r.TotalScore != 90 { t.Fatalf("total score: got %d, want 90", r.TotalScore) }
	if !r.Solved || r.Attempts != 3 { t.Fatalf("solved=%v attempts=%d", r.Solved, r.Attempts) }
}

func TestWordleFailureGlyph(t *testing.T) {
	g := newWordle()
	m, err := g.Match("Wordle 1300 X/6\n⬜⬜⬜⬜⬜")
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	r := g.Score(m)
	if r.Attempts != FailedAttempts { t.Fatalf("failed share must use sentinel attempts, got %d", r.Attempts) }
	if r.Solved { t.Fatalf("failed share marked solved") }
	if r.TotalScore != 0 { t.Fatalf("failed share score: got %d, want 0", r.TotalScore) }
}

func TestWordleHardModeAndMissingSkillLuck(t *testing.T) {
	g := newWordle()
	m, err := g.Match("Wordle 500 5/6*\n🟩🟩🟩🟩🟩")
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	r := g.Score(m)
	if !r.HardMode { t.Fatalf("hard mode star not detected") }
	if r.Skill != 0 || r.Luck != 0 { t.Fatalf("missing skill/luck must default to 0") }
	if r.TotalScore != 20 { t.Fatalf("total score: got %d, want 20", r.TotalScore) }
}

func TestWordleGridStopsAtCommentary(t *testing.T) {
	g := newWordle()
	m, err := g.Match("Wordle 600 2/6\n🟨⬜⬜⬜⬜\n🟩🟩🟩🟩🟩\ngreat puzzle today\n🟩🟩🟩🟩🟩")
	if err != nil || m == nil { t.Fatalf("Match: %v", err) }
	if got := m.Field("grid", ""); got != "🟨⬜⬜⬜⬜\n🟩🟩🟩🟩🟩" {
		t.Fatalf("grid must be the first contiguous run, got %q", got)
	}
}

func TestWordleNoMatchWithoutAnchor(t *testing.T) {
	g := newWordle()
	m, err := g.Match("Totally unrelated 123 3/6")
	if err != nil { t.Fatalf("Match: %v", err) }
	if m != nil { t.Fatalf("matched text without anchor") }
}

func TestWordleAnchorWithoutStructureIsNoMatch(t *testing.T) {
	g := newWordle()
	m, err := g.Match("I love wordle so much")
	if err != nil { t.Fatalf("chatty mention must not be an error: %v", err) }
	if m != nil { t.Fatalf("chatty mention must not match") }
}
