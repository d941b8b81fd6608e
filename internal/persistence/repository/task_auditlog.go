package repository

import (
	"context"
	"time"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskAuditLogRepository struct {
	db *mongo.Database
}

func NewTaskAuditLogRepository(db *mongo.Database) domain.TaskAuditRepository {
	return &taskAuditLogRepository{
		db: db,
	}
}

func (r *taskAuditLogRepository) Log(ctx context.Context, log *domain.TaskAuditLog) error {
	collection := r.db.Collection(db.TaskAuditLogsCollection)

	_, err := collection.InsertOne(ctx, log)
	return err
}

func (r *taskAuditLogRepository) GetByRoomID(ctx context.Context, roomID string, limit int) ([]domain.TaskAuditLog, error) {
	collection := r.db.Collection(db.TaskAuditLogsCollection)

	filter := bson.M{"room_id": roomID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.TaskAuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *taskAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	collection := r.db.Collection(db.TaskAuditLogsCollection)

	filter := bson.M{
		"timestamp": bson.M{
			"$lt": before,
		},
	}

	_, err := collection.DeleteMany(ctx, filter)
	return err
}

func (r *taskAuditLogRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.TaskAuditLogsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7776000), // 90 days TTL
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
