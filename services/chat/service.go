package chat

import (
	"context"
	"strings"
	"time"

	chatRepo "branchbook/database/repository/chat"
	"branchbook/models"
	ai "branchbook/services/intelligence"
	"branchbook/utils"

	"go.uber.org/zap"
)

type ChatService interface {
	// HandleTurn answers one chat message. It never fails; upstream and storage
	// errors are logged and absorbed.
	HandleTurn(ctx context.Context, userID *int64, req models.ChatRequest) models.BotResponse
	History(ctx context.Context, userID int64) ([]models.ChatMessage, error)
}

type DefaultChatService struct {
	Messages  chatRepo.ChatRepository
	Matcher   *ai.Matcher
	Assistant ai.Assistant
	// Window is optional; when set, every answered turn is pushed to it.
	Window ai.HistoryStore
	Now    func() time.Time
	Logger *zap.Logger
}

func (s *DefaultChatService) HandleTurn(ctx context.Context, userID *int64, req models.ChatRequest) models.BotResponse {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = utils.DefaultSessionID
	}

	s.persist(ctx, userID, sessionID, models.RoleUserMessage, req.Message)

	resp, ok := s.Matcher.Match(ctx, req.Message)
	if !ok {
		resp = s.Assistant.Respond(ctx, ai.TurnInput{
			SessionID: sessionID,
			Message:   req.Message,
			State: map[string]any{
				"authenticated": userID != nil,
				"session_id":    sessionID,
			},
		})
	}

	s.persist(ctx, userID, sessionID, models.RoleAssistantMessage, resp.Reply)
	if s.Window != nil {
		err := s.Window.Push(ctx, sessionID,
			models.Turn{Role: models.RoleUserMessage, Content: req.Message},
			models.Turn{Role: models.RoleAssistantMessage, Content: resp.Reply},
		)
		if err != nil {
			s.logger().Warn("failed to update chat window", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return resp
}

func (s *DefaultChatService) History(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	msgs, err := s.Messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return msgs, nil
}

func (s *DefaultChatService) persist(ctx context.Context, userID *int64, sessionID, role, content string) {
	msg := &models.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Messages.Append(ctx, msg); err != nil {
		s.logger().Error("failed to persist chat message",
			zap.String("sessionID", sessionID), zap.String("role", role), zap.Error(err))
	}
}

func (s *DefaultChatService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultChatService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
