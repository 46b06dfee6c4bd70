package games

import (
	"regexp"
	"strings"
)

var (
	framedShare   = regexp.MustCompile(`(?i)Framed\s+#?(\d+)`)
	framedSquares = regexp.MustCompile(`🟥|🟩|⬛`)
)

type framedGame struct{}

func newFramed() Game { return framedGame{} }

func (framedGame) Definition() Definition {
	return Definition{
		ID:           Framed,
		DisplayName:  "Framed",
		Scoring:      ScoringPoints,
		Capabilities: []Capability{CapGrid},
		ChatChannel:  "framed-chat",
		ScoreChannel: "framed",
		PlayerRole:   "framed-player",
		Resubmission: ResubmitAppend,
		Sample:       "Framed #1024\n🎥 🟥 🟥 🟩 ⬛ ⬛ ⬛",
	}
}

func (g framedGame) Match(text string) (*RawMatch, error) {
	if !strings.Contains(strings.ToLower(text), "framed") {
		return nil, nil
	}
	m := framedShare.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	idx := atoiDefault(m[1], -1)
	if idx < 0 {
		return nil, &FormatError{Game: Framed, Reason: "puzzle index out of range"}
	}
	squares := strings.Join(framedSquares.FindAllString(text, -1), "")
	return &RawMatch{
		Game:        Framed,
		PuzzleIndex: idx,
		Fields:      map[string]string{"squares": squares},
	}, nil
}

func (g framedGame) Score(m *RawMatch) *ScoredResult {
	squares := []rune(m.Field("squares", ""))

	// Attempts is the 1-based position of the first solved marker; when the
	// puzzle was not solved, every revealed square counts as an attempt.
	attempts := len(squares)
	solved := false
	for i, r := range squares {
		if r == '🟩' {
			attempts = i + 1
			solved = true
			break
		}
	}

	score := 0
	if solved {
		switch attempts {
		case 1:
			score = 100
		case 2:
			score = 80
		case 3:
			score = 60
		case 4:
			score = 40
		case 5:
			score = 20
		case 6:
			score = 10
		}
	}

	return &ScoredResult{
		Game:        Framed,
		PuzzleIndex: m.PuzzleIndex,
		Attempts:    attempts,
		Solved:      solved,
		TotalScore:  score,
		Grid:        string(squares),
	}
}
