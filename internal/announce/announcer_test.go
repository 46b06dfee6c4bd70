package announce

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/msgcat"
	"github.com/ferrin/discord-puzzles-bot/internal/presenter"
	"github.com/ferrin/discord-puzzles-bot/internal/render"
	"github.com/ferrin/discord-puzzles-bot/internal/store"
)

type capturedSend struct {
	channel string
	payload string
	image   bool
}

type fakeEgress struct {
	sends []capturedSend
}

func (f *fakeEgress) SendText(ctx context.Context, channel, message string) error {
	f.sends = append(f.sends, capturedSend{channel: channel, payload: message})
	return nil
}

func (f *fakeEgress) SendImage(ctx context.Context, channel, imageBase64 string) error {
	f.sends = append(f.sends, capturedSend{channel: channel, payload: imageBase64, image: true})
	return nil
}

func newTestAnnouncer(t *testing.T, repo store.Repository) (*Announcer, *fakeEgress) {
	t.Helper()
	reg, err := games.NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	cat, err := msgcat.New("")
	if err != nil { t.Fatalf("msgcat.New: %v", err) }
	eg := &fakeEgress{}
	a := New(repo, reg, presenter.NewFormatter(cat), presenter.NewPresenter(eg), render.NewCardRenderer(), 10)
	return a, eg
}

func saveWordle(t *testing.T, repo store.Repository, user string, score int, at time.Time) {
	t.Helper()
	res := &domain.PlayerResult{
		UserID:      user,
		DisplayName: user,
		Game:        games.Wordle,
		PuzzleIndex: 1500,
		Attempts:    3,
		Solved:      true,
		TotalScore:  score,
		CreatedAt:   at,
	}
	if err := repo.SaveResult(context.Background(), res, games.ResubmitAppend); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
}

func TestWeeklyPostsTextAndCard(t *testing.T) {
	repo := store.NewMemoryRepository()
	now := time.Now()
	saveWordle(t, repo, "alice", 120, now.Add(-24*time.Hour))
	saveWordle(t, repo, "bob", 90, now.Add(-48*time.Hour))

	a, eg := newTestAnnouncer(t, repo)
	a.postWeekly(context.Background(), now)

	var wordleSends []capturedSend
	for _, s := range eg.sends {
		if s.channel == "wordle" {
			wordleSends = append(wordleSends, s)
		}
	}
	if len(wordleSends) != 2 { t.Fatalf("wordle sends = %d, want text+card", len(wordleSends)) }
	if wordleSends[0].image { t.Fatalf("text must go out before the card") }
	if !strings.Contains(wordleSends[0].payload, "alice") {
		t.Fatalf("board text missing leader: %q", wordleSends[0].payload)
	}
	if !wordleSends[1].image || wordleSends[1].payload == "" {
		t.Fatalf("expected a rendered card")
	}
}

func TestWeeklySkipsGamesWithoutScores(t *testing.T) {
	repo := store.NewMemoryRepository()
	saveWordle(t, repo, "alice", 120, time.Now())

	a, eg := newTestAnnouncer(t, repo)
	a.postWeekly(context.Background(), time.Now())

	for _, s := range eg.sends {
		if s.channel != "wordle" {
			t.Fatalf("unexpected post to %s with no scores", s.channel)
		}
	}
}

func TestWeeklyWindowExcludesOldScores(t *testing.T) {
	repo := store.NewMemoryRepository()
	now := time.Now()
	saveWordle(t, repo, "ancient", 500, now.Add(-30*24*time.Hour))

	a, eg := newTestAnnouncer(t, repo)
	a.postWeekly(context.Background(), now)

	if len(eg.sends) != 0 { t.Fatalf("expected no posts, got %d", len(eg.sends)) }
}

func TestTickDeduplicates(t *testing.T) {
	repo := store.NewMemoryRepository()
	a, eg := newTestAnnouncer(t, repo)

	// A Sunday 23:59 in the announcer's timezone.
	sunday := time.Date(2026, 9, 6, 23, 59, 5, 0, a.loc)
	saveWordle(t, repo, "alice", 100, sunday.Add(-time.Hour))

	a.tick(context.Background(), sunday)
	first := len(eg.sends)
	if first == 0 { t.Fatalf("expected weekly post on Sunday 23:59") }

	a.tick(context.Background(), sunday.Add(20*time.Second))
	if len(eg.sends) != first { t.Fatalf("weekly post fired twice") }
}

func TestMonthlyFiresOnFirstOfMonth(t *testing.T) {
	repo := store.NewMemoryRepository()
	a, eg := newTestAnnouncer(t, repo)

	firstOct := time.Date(2026, 10, 1, 0, 1, 30, 0, a.loc)
	saveWordle(t, repo, "alice", 100, firstOct.Add(-10*24*time.Hour))

	a.tick(context.Background(), firstOct)
	if len(eg.sends) == 0 { t.Fatalf("expected monthly post on the 1st") }
	if !strings.Contains(eg.sends[0].payload, "Monthly") {
		t.Fatalf("expected monthly title, got %q", eg.sends[0].payload)
	}
}
