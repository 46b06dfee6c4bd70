package games

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bandleShare = regexp.MustCompile(`(?i)Bandle\s+#?(\d+)\s+(\d|X)/(\d)`)
	bandleBonus = regexp.MustCompile(`(?i)Bonus Rounds: (\d+)/(\d+)`)
)

type bandleGame struct{}

func newBandle() Game { return bandleGame{} }

func (bandleGame) Definition() Definition {
	return Definition{
		ID:           Bandle,
		DisplayName:  "Bandle",
		Scoring:      ScoringPoints,
		Capabilities: []Capability{CapBonusRounds},
		ChatChannel:  "bandle-chat",
		ScoreChannel: "bandle",
		PlayerRole:   "bandle-player",
		Resubmission: ResubmitAppend,
		Sample:       "Bandle #921 3/6\nBonus Rounds: 2/5",
	}
}

func (g bandleGame) Match(text string) (*RawMatch, error) {
	if !strings.Contains(strings.ToLower(text), "bandle") {
		return nil, nil
	}
	m := bandleShare.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, &FormatError{Game: Bandle, Reason: "puzzle index out of range"}
	}
	fields := map[string]string{
		"attempts": strings.ToUpper(m[2]),
		"max":      m[3],
	}
	if bm := bandleBonus.FindStringSubmatch(text); bm != nil {
		fields["bonus_completed"] = bm[1]
		fields["bonus_total"] = bm[2]
	}
	return &RawMatch{Game: Bandle, PuzzleIndex: idx, Fields: fields}, nil
}

func (g bandleGame) Score(m *RawMatch) *ScoredResult {
	maxAttempts := atoiDefault(m.Field("max", ""), 6)
	raw := m.Field("attempts", "X")
	solved := raw != "X"

	var attempts int
	if solved {
		attempts = atoiDefault(raw, maxAttempts+1)
	} else {
		// Failure glyph: one past the allowed attempts, never zero.
		attempts = maxAttempts + 1
	}

	score := 0
	if solved && attempts < 6 {
		score = 6 - attempts
	}

	return &ScoredResult{
		Game:           Bandle,
		PuzzleIndex:    m.PuzzleIndex,
		Attempts:       attempts,
		Solved:         solved,
		TotalScore:     score,
		BonusCompleted: atoiDefault(m.Field("bonus_completed", ""), 0),
		BonusTotal:     atoiDefault(m.Field("bonus_total", ""), 0),
	}
}
