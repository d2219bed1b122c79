// File: database/repository/chat/interface.go
package chatRepo

import (
	"context"

	"branchbook/database"
	"branchbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ChatRepository interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
	// RecentBySession returns up to limit latest messages of the session, oldest first.
	RecentBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ChatMessage, error)
}

type mongoChatRepo struct {
	coll *mongo.Collection
	seq  *database.Sequence
}

// NewMongoChatRepo constructs a new MongoDB ChatRepository.
func NewMongoChatRepo() ChatRepository {
	db := database.Database()
	repo := &mongoChatRepo{
		coll: db.Collection("chat_messages"),
		seq:  database.NewSequence(db),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(err)
	}
	return repo
}
