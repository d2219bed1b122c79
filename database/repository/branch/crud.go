// File: database/repository/branch/crud.go
package branchRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"branchbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBranchRepo) GetByID(ctx context.Context, id int64) (*models.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var branch models.Branch
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&branch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get branch %d: %w", id, err)
	}
	return &branch, nil
}

// List returns branches ordered by city then name. limit <= 0 means no limit.
func (r *mongoBranchRepo) List(ctx context.Context, limit int) ([]models.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "city", Value: 1}, {Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer cursor.Close(ctx)

	branches := []models.Branch{}
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("decode branches: %w", err)
	}
	return branches, nil
}

func (r *mongoBranchRepo) Create(ctx context.Context, branch *models.Branch) error {
	if branch.SlotMinutes <= 0 {
		return fmt.Errorf("branch %q: slot minutes must be positive", branch.Name)
	}
	if branch.OpenMinute >= branch.CloseMinute {
		return fmt.Errorf("branch %q: open time must precede close time", branch.Name)
	}

	id, err := r.seq.Next(ctx, "branches")
	if err != nil {
		return err
	}
	branch.ID = id

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, branch); err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (r *mongoBranchRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
