package chat

import (
	"context"

	chatRepo "branchbook/database/repository/chat"
	"branchbook/models"
	ai "branchbook/services/intelligence"

	"go.uber.org/zap"
)

// SessionHistory serves the assistant's conversation window from Redis and
// rebuilds it from stored messages once the Redis window has expired.
type SessionHistory struct {
	Window   ai.HistoryStore
	Messages chatRepo.ChatRepository
	Logger   *zap.Logger
}

func (h *SessionHistory) Recent(ctx context.Context, sessionID string, limit int) ([]models.Turn, error) {
	if h.Window != nil {
		turns, err := h.Window.Recent(ctx, sessionID, limit)
		if err == nil && len(turns) > 0 {
			return turns, nil
		}
		if err != nil {
			h.logger().Warn("chat window unavailable, reading stored messages", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	// HandleTurn stores the message being answered before asking for history.
	msgs, err := h.Messages.RecentBySession(ctx, sessionID, limit+1)
	if err != nil {
		return nil, err
	}
	if n := len(msgs); n > 0 && msgs[n-1].Role == models.RoleUserMessage {
		msgs = msgs[:n-1]
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	turns := make([]models.Turn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, models.Turn{Role: m.Role, Content: m.Content})
	}
	if h.Window != nil && len(turns) > 0 {
		if err := h.Window.Push(ctx, sessionID, turns...); err != nil {
			h.logger().Warn("failed to reseed chat window", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return turns, nil
}

func (h *SessionHistory) Push(ctx context.Context, sessionID string, turns ...models.Turn) error {
	if h.Window == nil {
		return nil
	}
	return h.Window.Push(ctx, sessionID, turns...)
}

func (h *SessionHistory) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
