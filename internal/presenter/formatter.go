package presenter

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/msgcat"
	"github.com/ferrin/discord-puzzles-bot/internal/obslog"
)

// Formatter renders user-visible texts from the message catalog.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

func (f *Formatter) render(key string, data map[string]any, fallback string) string {
	s, err := f.cat.Render(key, data)
	if err != nil {
		obslog.L().Warn("msgcat_render_failed", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return s
}

// Acknowledgement is the reply posted in the channel the share arrived in.
func (f *Formatter) Acknowledgement(name string, def games.Definition, r *games.ScoredResult) string {
	data := map[string]any{
		"Name":     name,
		"Puzzle":   r.PuzzleIndex,
		"HardMode": r.HardMode,
	}
	return f.render(string(def.ID)+".ack", data,
		fmt.Sprintf("%s's %s %d recorded!", name, def.DisplayName, r.PuzzleIndex))
}

// Introduction is the short post made in the game's chat channel when the
// submitter gains access to it.
func (f *Formatter) Introduction(name string, def games.Definition, r *games.ScoredResult) string {
	data := map[string]any{
		"Name":   name,
		"Puzzle": r.PuzzleIndex,
	}
	switch def.ID {
	case games.Wordle:
		data["Attempts"] = attemptsDisplay(r)
		data["HardMode"] = r.HardMode
		data["Grid"] = r.Grid
		data["Skill"] = r.Skill
		data["Luck"] = r.Luck
	case games.Connections:
		difficulty := "🟨🟩"
		if r.SolvedPurpleFirst {
			difficulty = "🟪"
		} else if r.SolvedBlueFirst {
			difficulty = "🟦"
		}
		data["Difficulty"] = difficulty
		data["Score"] = r.TotalScore
		data["Guesses"] = r.Guesses
	case games.Framed:
		data["Attempts"] = r.Attempts
		word := "guesses"
		if r.Attempts == 1 {
			word = "guess"
		}
		data["GuessWord"] = word
	case games.Gisnep:
		data["Seconds"] = r.CompletionSeconds
	case games.Bandle:
		data["Attempts"] = attemptsDisplay(r)
		data["HasBonus"] = r.BonusTotal > 0
		data["BonusCompleted"] = r.BonusCompleted
		data["BonusTotal"] = r.BonusTotal
	}
	return f.render(string(def.ID)+".intro", data,
		fmt.Sprintf("%s just posted %s #%d", name, def.DisplayName, r.PuzzleIndex))
}

// ScoreUnit is the unit label shown next to leaderboard scores.
func ScoreUnit(def games.Definition) string {
	if def.Scoring == games.ScoringTime {
		return "s avg"
	}
	return "points"
}

// attemptsDisplay shows the failure sentinel as the share's X glyph.
func attemptsDisplay(r *games.ScoredResult) string {
	if !r.Solved {
		return "X"
	}
	return fmt.Sprintf("%d", r.Attempts)
}

func (f *Formatter) Failure(def games.Definition) string {
	return f.render("common.failure", map[string]any{"Game": def.DisplayName},
		fmt.Sprintf("⚠️ Couldn't process your %s result.", def.DisplayName))
}

func (f *Formatter) RoleNotice(userID string, def games.Definition) string {
	return f.render("common.role_granted", map[string]any{"UserID": userID, "Channel": def.ChatChannel},
		fmt.Sprintf("\n\nYou now have access to the %s channel!", def.ChatChannel))
}

func (f *Formatter) InvalidGame() string {
	return f.render("common.invalid_game", map[string]any{},
		"Invalid game choice!")
}

// Leaderboard renders a titled board. The unit column follows the game's
// scoring kind.
func (f *Formatter) Leaderboard(def games.Definition, entries []*domain.LeaderboardEntry) string {
	if len(entries) == 0 {
		return f.render("leaderboard.empty", map[string]any{"Game": def.DisplayName},
			fmt.Sprintf("No scores recorded for %s yet.", def.DisplayName))
	}

	var b strings.Builder
	b.WriteString(f.render("leaderboard.header", map[string]any{"Game": def.DisplayName},
		fmt.Sprintf("🏆 %s Leaderboard 🏆\n", def.DisplayName)))
	unit := ScoreUnit(def)
	for i, e := range entries {
		score := fmt.Sprintf("%.0f", e.Score)
		if def.Scoring == games.ScoringTime {
			score = fmt.Sprintf("%.1f", e.Score)
		}
		b.WriteString(f.render("leaderboard.row", map[string]any{
			"Rank":  i + 1,
			"Name":  e.DisplayName,
			"Score": score,
			"Unit":  unit,
		}, fmt.Sprintf("%d. %s - %s %s\n", i+1, e.DisplayName, score, unit)))
	}
	return b.String()
}

func (f *Formatter) WeeklyTitle(def games.Definition) string {
	return f.render("leaderboard.weekly_title", map[string]any{"Game": def.DisplayName},
		fmt.Sprintf("%s Weekly Leaderboard", def.DisplayName))
}

func (f *Formatter) MonthlyTitle(def games.Definition) string {
	return f.render("leaderboard.monthly_title", map[string]any{"Game": def.DisplayName},
		fmt.Sprintf("%s Monthly Leaderboard", def.DisplayName))
}

// MyScores renders a user's recent Wordle history.
func (f *Formatter) MyScores(name string, results []*domain.PlayerResult) string {
	if len(results) == 0 {
		return f.render("myscore.empty", map[string]any{}, "No Wordle scores recorded for you yet!")
	}
	var b strings.Builder
	b.WriteString(f.render("myscore.header", map[string]any{"Name": name, "Count": len(results)},
		fmt.Sprintf("📊 %s's last %d Wordle scores\n", name, len(results))))
	for _, r := range results {
		b.WriteString(f.render("myscore.row", map[string]any{
			"Date":     r.CreatedAt.Format("2006-01-02"),
			"Puzzle":   r.PuzzleIndex,
			"Attempts": r.Attempts,
			"Skill":    r.Skill,
			"Luck":     r.Luck,
		}, fmt.Sprintf("%s | Game %d — %d/6\n", r.CreatedAt.Format("2006-01-02"), r.PuzzleIndex, r.Attempts)))
	}
	return b.String()
}
