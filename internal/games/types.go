package games

import "fmt"

// ID identifies one supported daily puzzle game.
type ID string

const (
	Wordle      ID = "wordle"
	Connections ID = "connections"
	Framed      ID = "framed"
	Gisnep      ID = "gisnep"
	Bandle      ID = "bandle"
)

// ScoringKind describes what the game's primary metric means.
type ScoringKind string

const (
	ScoringPoints ScoringKind = "points"
	ScoringTime   ScoringKind = "time"
)

// Capability names an optional field a game's share text may carry.
type Capability string

const (
	CapSkillLuck   Capability = "skill_luck"
	CapHardMode    Capability = "hard_mode"
	CapGrid        Capability = "grid"
	CapFirstGroup  Capability = "first_group"
	CapBonusRounds Capability = "bonus_rounds"
	CapTime        Capability = "completion_time"
)

// Resubmission is the policy applied when a user posts the same puzzle twice.
type Resubmission string

const (
	ResubmitReplace Resubmission = "replace"
	ResubmitAppend  Resubmission = "append"
)

// FailedAttempts is the sentinel stored when a share reports the failure
// glyph (X/6 and friends): one past the maximum allowed guesses, never zero.
const FailedAttempts = 7

// Definition is the static description of one game.
type Definition struct {
	ID           ID
	DisplayName  string
	Scoring      ScoringKind
	Capabilities []Capability
	ChatChannel  string
	ScoreChannel string
	PlayerRole   string
	Resubmission Resubmission
	// Sample is a canonical share text used to validate matcher disjointness
	// when the registry is built.
	Sample string
}

// RawMatch is the uninterpreted output of a matcher: the puzzle index plus
// the raw tokens of every optional field the share carried.
type RawMatch struct {
	Game        ID
	PuzzleIndex int
	Fields      map[string]string
}

// Field returns the raw token for key, or def when the share did not carry it.
func (m *RawMatch) Field(key, def string) string {
	if m == nil || m.Fields == nil {
		return def
	}
	if v, ok := m.Fields[key]; ok {
		return v
	}
	return def
}

// ScoredResult is the calculator's output for one matched share.
type ScoredResult struct {
	Game        ID
	PuzzleIndex int

	Attempts   int
	Solved     bool
	TotalScore int

	// Wordle
	Skill    int
	Luck     int
	HardMode bool
	Grid     string

	// Connections
	Guesses           int
	CorrectGroups     int
	Mistakes          int
	SolvedPurpleFirst bool
	SolvedBlueFirst   bool
	Finished          bool

	// Bandle
	BonusCompleted int
	BonusTotal     int

	// Gisnep
	CompletionSeconds int
}

// Game binds a definition to its matcher and calculator.
type Game interface {
	Definition() Definition
	// Match returns (nil, nil) when text is not this game's share at all,
	// a *FormatError when the anchor matched but the structure is unusable,
	// and a RawMatch otherwise.
	Match(text string) (*RawMatch, error)
	// Score derives the final numbers from a RawMatch. It never panics on
	// malformed field tokens; missing or broken fields fall back to defaults.
	Score(m *RawMatch) *ScoredResult
}

// FormatError reports a share that was recognizably for a game but could not
// be parsed into a usable result.
type FormatError struct {
	Game   ID
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s share unusable: %s", e.Game, e.Reason)
}

// AmbiguousMatchError reports a registry whose matchers are not disjoint over
// the canonical samples. It is fatal at construction, never at runtime.
type AmbiguousMatchError struct {
	Sample  ID
	Matched ID
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("canonical %s sample also matched by %s", e.Sample, e.Matched)
}
