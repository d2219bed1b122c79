// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"branchbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) ExistsBooked(ctx context.Context, branchID int64, start time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"branchId": branchID, "startTime": start.UTC(), "status": models.StatusBooked}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("check booked slot: %w", err)
	}
	return n > 0, nil
}

func (r *mongoAppointmentRepo) BookedStartTimes(ctx context.Context, branchID int64, from, to time.Time) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"branchId":  branchID,
		"status":    models.StatusBooked,
		"startTime": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
	}
	opts := options.Find().SetProjection(bson.M{"startTime": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		StartTime time.Time `bson:"startTime"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode booked slots: %w", err)
	}
	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.StartTime)
	}
	return out, nil
}

func (r *mongoAppointmentRepo) ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"userId": userID}, -1)
}

func (r *mongoAppointmentRepo) ListBookedByBranch(ctx context.Context, branchID int64) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"branchId": branchID, "status": models.StatusBooked}, 1)
}

func (r *mongoAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{}, -1)
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, order int) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: order}, {Key: "id", Value: order}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appts, nil
}
