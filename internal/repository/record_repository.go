package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection stores records of type T in one collection.
// T must not carry an _id field; reads project it away.
type MongoCollection[T any] struct {
	col *mongo.Collection
}

func NewMongoCollection[T any](col *mongo.Collection) *MongoCollection[T] {
	return &MongoCollection[T]{col: col}
}

func (r *MongoCollection[T]) Name() string { return r.col.Name() }

func (r *MongoCollection[T]) Insert(ctx context.Context, rec *T) error {
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

func (r *MongoCollection[T]) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FindAll returns every record in insertion order, without _id.
func (r *MongoCollection[T]) FindAll(ctx context.Context) ([]T, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var rec T
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}
