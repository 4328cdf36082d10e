package repository

import (
	"context"
	"emogo-service/internal/config"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NewMongoClient connects and waits until the server answers a ping,
// giving up after cfg.ConnectTimeout.
func NewMongoClient(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = cfg.ConnectTimeout
	ping := func() error {
		return client.Ping(ctx, nil)
	}
	notify := func(err error, next time.Duration) {
		log.Warnw("mongo not reachable yet", "error", err, "retry_in", next)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
