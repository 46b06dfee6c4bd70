package domain

import (
	"time"

	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

// PlayerResult is one persisted puzzle submission.
type PlayerResult struct {
	ID          int64    `json:"id"`
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Game        games.ID `json:"game"`
	PuzzleIndex int      `json:"puzzle_index"`

	Attempts   int  `json:"attempts"`
	Solved     bool `json:"solved"`
	TotalScore int  `json:"total_score"`

	Skill    int    `json:"skill"`
	Luck     int    `json:"luck"`
	HardMode bool   `json:"hard_mode"`
	Grid     string `json:"grid,omitempty"`

	Guesses           int  `json:"guesses"`
	SolvedPurpleFirst bool `json:"solved_purple_first"`
	SolvedBlueFirst   bool `json:"solved_blue_first"`
	Finished          bool `json:"finished"`

	BonusCompleted int `json:"bonus_completed"`
	BonusTotal     int `json:"bonus_total"`

	CompletionSeconds int `json:"completion_seconds"`

	CreatedAt time.Time `json:"created_at"`
}

// FromScored fills a PlayerResult from a calculator output.
func FromScored(userID, displayName string, r *games.ScoredResult, at time.Time) *PlayerResult {
	return &PlayerResult{
		UserID:            userID,
		DisplayName:       displayName,
		Game:              r.Game,
		PuzzleIndex:       r.PuzzleIndex,
		Attempts:          r.Attempts,
		Solved:            r.Solved,
		TotalScore:        r.TotalScore,
		Skill:             r.Skill,
		Luck:              r.Luck,
		HardMode:          r.HardMode,
		Grid:              r.Grid,
		Guesses:           r.Guesses,
		SolvedPurpleFirst: r.SolvedPurpleFirst,
		SolvedBlueFirst:   r.SolvedBlueFirst,
		Finished:          r.Finished,
		BonusCompleted:    r.BonusCompleted,
		BonusTotal:        r.BonusTotal,
		CompletionSeconds: r.CompletionSeconds,
		CreatedAt:         at,
	}
}

// LeaderboardEntry is one aggregated leaderboard row.
type LeaderboardEntry struct {
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	Played      int     `json:"played"`
}
