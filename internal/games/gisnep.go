package games

import (
	"regexp"
	"strings"
)

var (
	gisnepTime   = regexp.MustCompile(`(?i)#Gisnep.*in (\d{1,2}:\d{2}|\d{1,3})`)
	gisnepNumber = regexp.MustCompile(`(?i)No\. (\d+)`)
)

type gisnepGame struct{}

func newGisnep() Game { return gisnepGame{} }

func (gisnepGame) Definition() Definition {
	return Definition{
		ID:           Gisnep,
		DisplayName:  "Gisnep",
		Scoring:      ScoringTime,
		Capabilities: []Capability{CapTime},
		ChatChannel:  "gisnep-chat",
		ScoreChannel: "gisnep",
		PlayerRole:   "gisnep-player",
		Resubmission: ResubmitAppend,
		Sample:       "I solved today's #Gisnep (No. 321) in 1:37",
	}
}

func (g gisnepGame) Match(text string) (*RawMatch, error) {
	if !strings.Contains(strings.ToLower(text), "#gisnep") {
		return nil, nil
	}
	tm := gisnepTime.FindStringSubmatch(text)
	if tm == nil {
		return nil, nil
	}
	nm := gisnepNumber.FindStringSubmatch(text)
	if nm == nil {
		return nil, &FormatError{Game: Gisnep, Reason: "puzzle number not found"}
	}
	idx := atoiDefault(nm[1], -1)
	if idx < 0 {
		return nil, &FormatError{Game: Gisnep, Reason: "puzzle number out of range"}
	}
	return &RawMatch{
		Game:        Gisnep,
		PuzzleIndex: idx,
		Fields:      map[string]string{"time": tm[1]},
	}, nil
}

func (g gisnepGame) Score(m *RawMatch) *ScoredResult {
	seconds := 0
	raw := m.Field("time", "")
	if parts := strings.Split(raw, ":"); len(parts) == 2 {
		seconds = atoiDefault(parts[0], 0)*60 + atoiDefault(parts[1], 0)
	} else {
		seconds = atoiDefault(raw, 0)
	}

	// Time-based game: the completion time is the metric, there are no points.
	return &ScoredResult{
		Game:              Gisnep,
		PuzzleIndex:       m.PuzzleIndex,
		Solved:            true,
		CompletionSeconds: seconds,
	}
}
