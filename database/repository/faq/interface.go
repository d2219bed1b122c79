// File: database/repository/faq/interface.go
package faqRepo

import (
	"context"
	"fmt"
	"time"

	"branchbook/database"
	"branchbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FAQRepository interface {
	// ListActive returns up to limit active entries ordered by category.
	ListActive(ctx context.Context, limit int) ([]models.FAQEntry, error)
	Create(ctx context.Context, entry *models.FAQEntry) error
	Count(ctx context.Context) (int64, error)
}

type mongoFAQRepo struct {
	coll *mongo.Collection
}

// NewMongoFAQRepo constructs the FAQ repository.
func NewMongoFAQRepo() FAQRepository {
	return &mongoFAQRepo{coll: database.Database().Collection("faq_entries")}
}

func (r *mongoFAQRepo) ListActive(ctx context.Context, limit int) ([]models.FAQEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list faq entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.FAQEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode faq entries: %w", err)
	}
	return entries, nil
}

func (r *mongoFAQRepo) Create(ctx context.Context, entry *models.FAQEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert faq entry: %w", err)
	}
	return nil
}

func (r *mongoFAQRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
