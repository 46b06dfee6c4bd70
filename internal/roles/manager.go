package roles

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/obslog"
	"github.com/ferrin/discord-puzzles-bot/internal/tracker"
)

// Client is the slice of the gateway API the role manager needs.
type Client interface {
	GrantRole(ctx context.Context, userID, role string) error
	RevokeRole(ctx context.Context, userID, role string) error
	RoleMembers(ctx context.Context, role string) ([]string, error)
}

// Manager applies the per-game player role after an ingestion.
type Manager struct {
	client Client
}

func NewManager(client Client) *Manager {
	return &Manager{client: client}
}

// Apply runs the role side effect for one tracker outcome and reports whether
// the submitter was granted the role. A NEW_RECORD resets the role: every
// current holder loses it before the submitter receives it. A CURRENT
// submission joins the holders. A STALE submission changes nothing.
func (m *Manager) Apply(ctx context.Context, def games.Definition, userID string, outcome tracker.Outcome) (bool, error) {
	switch outcome {
	case tracker.OutcomeNewRecord:
		members, err := m.client.RoleMembers(ctx, def.PlayerRole)
		if err != nil {
			return false, fmt.Errorf("list %s holders: %w", def.PlayerRole, err)
		}
		for _, member := range members {
			if member == userID {
				continue
			}
			if err := m.client.RevokeRole(ctx, member, def.PlayerRole); err != nil {
				return false, fmt.Errorf("revoke %s from %s: %w", def.PlayerRole, member, err)
			}
		}
		if err := m.client.GrantRole(ctx, userID, def.PlayerRole); err != nil {
			return false, fmt.Errorf("grant %s: %w", def.PlayerRole, err)
		}
		obslog.L().Info("role_reset",
			zap.String("game", string(def.ID)),
			zap.String("role", def.PlayerRole),
			zap.String("user", userID),
			zap.Int("revoked", len(members)))
		return true, nil

	case tracker.OutcomeCurrent:
		if err := m.client.GrantRole(ctx, userID, def.PlayerRole); err != nil {
			return false, fmt.Errorf("grant %s: %w", def.PlayerRole, err)
		}
		obslog.L().Info("role_grant",
			zap.String("game", string(def.ID)),
			zap.String("role", def.PlayerRole),
			zap.String("user", userID))
		return true, nil

	default:
		return false, nil
	}
}
