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

type taskRepository struct {
	db *mongo.Database
}

func NewTaskRepository(db *mongo.Database) domain.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	collection := r.db.Collection(db.TasksCollection)

	_, err := collection.InsertOne(ctx, task)
	return err
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	collection := r.db.Collection(db.TasksCollection)

	var task domain.Task
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskRepository) GetByRoom(ctx context.Context, roomID string) ([]domain.Task, error) {
	collection := r.db.Collection(db.TasksCollection)

	filter := bson.M{"room": roomID}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) GetPersonal(ctx context.Context, ownerID string) ([]domain.Task, error) {
	collection := r.db.Collection(db.TasksCollection)

	// personal tasks are stored without a room
	filter := bson.M{
		"owner": ownerID,
		"room":  bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	collection := r.db.Collection(db.TasksCollection)

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	collection := r.db.Collection(db.TasksCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.TasksCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room", Value: 1},
				{Key: "order", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
