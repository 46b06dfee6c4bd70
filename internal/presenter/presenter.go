package presenter

import (
	"context"
	"encoding/base64"

	"github.com/ferrin/discord-puzzles-bot/internal/gateway"
)

// Presenter sends formatted texts and rendered cards through the egress.
type Presenter struct {
	egress gateway.Egress
}

func NewPresenter(egress gateway.Egress) *Presenter {
	return &Presenter{egress: egress}
}

func (p *Presenter) Reply(ctx context.Context, channel, text string) error {
	return p.egress.SendText(ctx, channel, text)
}

func (p *Presenter) Card(ctx context.Context, channel string, png []byte) error {
	return p.egress.SendImage(ctx, channel, base64.StdEncoding.EncodeToString(png))
}
