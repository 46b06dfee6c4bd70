package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
)

func TestRenderPNGDecodes(t *testing.T) {
	r := NewCardRenderer()
	entries := []*domain.LeaderboardEntry{
		{DisplayName: "alice", Score: 312, Played: 7},
		{DisplayName: "bob", Score: 280, Played: 7},
		{DisplayName: "a very long display name that will not fit in a row", Score: 95.5, Played: 3},
	}
	data, err := r.RenderPNG(context.Background(), "Wordle Leaderboard", "points", entries)
	if err != nil { t.Fatalf("RenderPNG: %v", err) }

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil { t.Fatalf("decode png: %v", err) }
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Fatalf("empty image bounds %v", img.Bounds())
	}
}

func TestRenderPNGEmptyBoard(t *testing.T) {
	r := NewCardRenderer()
	data, err := r.RenderPNG(context.Background(), "Gisnep Leaderboard", "s avg", nil)
	if err != nil { t.Fatalf("RenderPNG: %v", err) }
	if _, err := png.Decode(bytes.NewReader(data)); err != nil { t.Fatalf("decode png: %v", err) }
}

func TestRenderPNGCancelled(t *testing.T) {
	r := NewCardRenderer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RenderPNG(ctx, "x", "points", nil); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestMedalImageCached(t *testing.T) {
	a, err := renderMedalImage(1, 26)
	if err != nil { t.Fatalf("renderMedalImage: %v", err) }
	b, err := renderMedalImage(1, 26)
	if err != nil { t.Fatalf("renderMedalImage: %v", err) }
	if a != b { t.Fatalf("expected cached image to be reused") }
}
