package repository

import (
	"context"
	"errors"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type roomRepository struct {
	db *mongo.Database
}

func NewRoomRepository(db *mongo.Database) domain.RoomRepository {
	return &roomRepository{
		db: db,
	}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	collection := r.db.Collection(db.RoomsCollection)

	_, err := collection.InsertOne(ctx, room)
	return err
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	var room domain.Room
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	var room domain.Room
	err := collection.FindOne(ctx, bson.M{"code": code}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrInvalidJoinCode
	}
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepository) GetByMember(ctx context.Context, userID string) ([]domain.Room, error) {
	collection := r.db.Collection(db.RoomsCollection)

	filter := bson.M{"members": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []domain.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	collection := r.db.Collection(db.RoomsCollection)

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	collection := r.db.Collection(db.RoomsCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrRoomNotFound
	}

	return nil
}

func (r *roomRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.RoomsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "members", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
