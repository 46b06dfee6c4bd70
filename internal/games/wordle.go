package games

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	wordleShare     = regexp.MustCompile(`(?i)Wordle\s+#?\s*(\d+(?:,\d+)*)\s+([0-6X])/6(\*?)`)
	wordleSkillLuck = regexp.MustCompile(`(?i)Skill\s+(\d+)/99\s+Luck\s+(\d+)/99`)
)

type wordleGame struct{}

func newWordle() Game { return wordleGame{} }

func (wordleGame) Definition() Definition {
	return Definition{
		ID:           Wordle,
		DisplayName:  "Wordle",
		Scoring:      ScoringPoints,
		Capabilities: []Capability{CapSkillLuck, CapHardMode, CapGrid},
		ChatChannel:  "wordle-chat",
		ScoreChannel: "wordle",
		PlayerRole:   "wordle-player",
		Resubmission: ResubmitReplace,
		Sample:       "Wordle 1,293 4/6*\n\n⬜🟨⬜⬜⬜\n🟩⬜🟨⬜⬜\n🟩🟩🟩⬜⬜\n🟩🟩🟩🟩🟩\n\nSkill 85/99 Luck 12/99",
	}
}

func (g wordleGame) Match(text string) (*RawMatch, error) {
	if !strings.Contains(strings.ToLower(text), "wordle") {
		return nil, nil
	}
	m := wordleShare.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	// Thousands separators appear in newer share texts (Wordle 1,293).
	idx, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil, &FormatError{Game: Wordle, Reason: "puzzle index out of range"}
	}
	fields := map[string]string{"attempts": strings.ToUpper(m[2])}
	if m[3] == "*" {
		fields["hard_mode"] = "*"
	}
	if sl := wordleSkillLuck.FindStringSubmatch(text); sl != nil {
		fields["skill"] = sl[1]
		fields["luck"] = sl[2]
	}
	if grid := wordleGrid(text); grid != "" {
		fields["grid"] = grid
	}
	return &RawMatch{Game: Wordle, PuzzleIndex: idx, Fields: fields}, nil
}

// wordleGrid extracts the first contiguous run of guess rows. Trailing
// commentary after the grid is never included.
func wordleGrid(text string) string {
	var rows []string
	started := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && runesIn(line, "🟩🟨⬜") {
			rows = append(rows, line)
			started = true
			continue
		}
		if started {
			break
		}
	}
	return strings.Join(rows, "\n")
}

func (g wordleGame) Score(m *RawMatch) *ScoredResult {
	attempts := FailedAttempts
	if a := m.Field("attempts", "X"); a != "X" {
		if n, err := strconv.Atoi(a); err == nil {
			attempts = n
		}
	}
	solved := attempts <= 6

	var tier int
	switch attempts {
	case 1:
		tier = 100
	case 2:
		tier = 80
	case 3:
		tier = 60
	case 4:
		tier = 40
	case 5:
		tier = 20
	}

	skill := atoiDefault(m.Field("skill", ""), 0)
	luck := atoiDefault(m.Field("luck", ""), 0)

	return &ScoredResult{
		Game:        Wordle,
		PuzzleIndex: m.PuzzleIndex,
		Attempts:    attempts,
		Solved:      solved,
		TotalScore:  tier + skill - luck,
		Skill:       skill,
		Luck:        luck,
		HardMode:    m.Field("hard_mode", "") == "*",
		Grid:        m.Field("grid", ""),
	}
}
