package repository

import (
	"context"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type messageRepository struct {
	db *mongo.Database
}

func NewMessageRepository(db *mongo.Database) domain.MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	collection := r.db.Collection(db.ChatMessagesCollection)

	_, err := collection.InsertOne(ctx, msg)
	return err
}

func (r *messageRepository) CountByRoom(ctx context.Context, roomID string) (int64, error) {
	collection := r.db.Collection(db.ChatMessagesCollection)

	return collection.CountDocuments(ctx, bson.M{"room_id": roomID})
}

func (r *messageRepository) GetByRoom(ctx context.Context, roomID string, limit int64) ([]domain.ChatMessage, error) {
	collection := r.db.Collection(db.ChatMessagesCollection)

	filter := bson.M{"room_id": roomID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) DeleteByRoom(ctx context.Context, roomID string) (int64, error) {
	collection := r.db.Collection(db.ChatMessagesCollection)

	result, err := collection.DeleteMany(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *messageRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.ChatMessagesCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
