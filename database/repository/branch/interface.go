// File: database/repository/branch/interface.go
package branchRepo

import (
	"context"
	"errors"

	"branchbook/database"
	"branchbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no branch matches the given id.
var ErrNotFound = errors.New("branch not found")

type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Branch, error)
	List(ctx context.Context, limit int) ([]models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	Count(ctx context.Context) (int64, error)
}

type mongoBranchRepo struct {
	coll *mongo.Collection
	seq  *database.Sequence
}

// NewMongoBranchRepo constructs a new MongoDB BranchRepository.
func NewMongoBranchRepo() BranchRepository {
	db := database.Database()
	repo := &mongoBranchRepo{
		coll: db.Collection("branches"),
		seq:  database.NewSequence(db),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(err)
	}
	return repo
}
