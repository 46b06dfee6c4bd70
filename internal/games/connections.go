package games

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	connectionsHeader = regexp.MustCompile(`Connections\s*\nPuzzle #(\d+)`)
	connectionsPuzzle = regexp.MustCompile(`Puzzle #(\d+)`)
)

const connectionsSquares = "🟪🟦🟩🟨"

type connectionsGame struct{}

func newConnections() Game { return connectionsGame{} }

func (connectionsGame) Definition() Definition {
	return Definition{
		ID:           Connections,
		DisplayName:  "Connections",
		Scoring:      ScoringPoints,
		Capabilities: []Capability{CapFirstGroup},
		ChatChannel:  "connections-chat",
		ScoreChannel: "connections",
		PlayerRole:   "connections-player",
		Resubmission: ResubmitAppend,
		Sample:       "Connections\nPuzzle #543\n🟪🟪🟪🟪\n🟩🟩🟩🟩\n🟨🟨🟨🟨\n🟦🟦🟦🟦",
	}
}

func (g connectionsGame) Match(text string) (*RawMatch, error) {
	if !strings.Contains(strings.ToLower(text), "connections") {
		return nil, nil
	}
	if !connectionsHeader.MatchString(text) {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "Connections" || !strings.Contains(lines[1], "Puzzle #") {
		return nil, &FormatError{Game: Connections, Reason: "header not at top of share"}
	}
	pm := connectionsPuzzle.FindStringSubmatch(lines[1])
	if pm == nil {
		return nil, &FormatError{Game: Connections, Reason: "puzzle number not found"}
	}
	idx, err := strconv.Atoi(pm[1])
	if err != nil {
		return nil, &FormatError{Game: Connections, Reason: "puzzle number out of range"}
	}

	rows := connectionsRows(lines[2:])
	return &RawMatch{
		Game:        Connections,
		PuzzleIndex: idx,
		Fields:      map[string]string{"rows": strings.Join(rows, ",")},
	}, nil
}

// connectionsRows classifies each guess row: a uniform four-square row keeps
// its category square, a mixed four-square row becomes "X". The grid is the
// first contiguous run of rows; trailing commentary is not counted as misses.
func connectionsRows(lines []string) []string {
	var rows []string
	started := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		isRow := line != "" && runeCount(line) == 4 && runesIn(line, connectionsSquares)
		if isRow {
			started = true
			uniform := true
			first := ""
			for _, r := range line {
				s := string(r)
				if first == "" {
					first = s
				} else if s != first {
					uniform = false
				}
			}
			if uniform {
				rows = append(rows, first)
			} else {
				rows = append(rows, "X")
			}
			continue
		}
		if started {
			break
		}
	}
	return rows
}

func (g connectionsGame) Score(m *RawMatch) *ScoredResult {
	var rows []string
	if raw := m.Field("rows", ""); raw != "" {
		rows = strings.Split(raw, ",")
	}

	basePoints := map[string]int{"🟪": 4, "🟦": 3, "🟩": 2, "🟨": 1}

	total := 0
	firstGroup := ""
	correct := 0
	mistakes := 0
	for _, row := range rows {
		if _, ok := basePoints[row]; ok {
			if firstGroup == "" {
				firstGroup = row
			}
			correct++
		} else if row == "X" {
			mistakes++
		}
	}

	purpleFirst := firstGroup == "🟪"
	blueFirst := firstGroup == "🟦"
	if purpleFirst {
		total += 2
	} else if blueFirst {
		total += 1
	}

	for _, row := range rows {
		total += basePoints[row]
	}

	if correct == 4 && mistakes == 0 {
		total += 5
	} else {
		total -= mistakes
	}

	return &ScoredResult{
		Game:              Connections,
		PuzzleIndex:       m.PuzzleIndex,
		Solved:            correct == 4,
		TotalScore:        total,
		Guesses:           len(rows),
		CorrectGroups:     correct,
		Mistakes:          mistakes,
		SolvedPurpleFirst: purpleFirst,
		SolvedBlueFirst:   blueFirst,
		Finished:          correct == 4,
	}
}
