package repository

import (
	"context"
	"emogo-service/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the record store contract shared by the mongo and
// memory drivers.
type Collection[T any] interface {
	Name() string
	Insert(ctx context.Context, rec *T) error
	DeleteAll(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]T, error)
}

// Store groups the three record collections.
type Store struct {
	Vlogs      Collection[models.Vlog]
	Sentiments Collection[models.Sentiment]
	GPS        Collection[models.GPS]
}

func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Vlogs:      NewMongoCollection[models.Vlog](db.Collection(models.VlogsCollection)),
		Sentiments: NewMongoCollection[models.Sentiment](db.Collection(models.SentimentsCollection)),
		GPS:        NewMongoCollection[models.GPS](db.Collection(models.GPSCollection)),
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Vlogs:      NewMemoryCollection[models.Vlog](models.VlogsCollection),
		Sentiments: NewMemoryCollection[models.Sentiment](models.SentimentsCollection),
		GPS:        NewMemoryCollection[models.GPS](models.GPSCollection),
	}
}
