//go:build integration

package repository

import (
	"context"
	"emogo-service/internal/config"
	"emogo-service/internal/models"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startMongo(t *testing.T) string {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestMongoStoreIntegration(t *testing.T) {
	uri := startMongo(t)
	ctx := context.Background()

	cfg := &config.Config{ConnectTimeout: 30 * time.Second}
	cfg.Mongo.URI = uri
	client, err := NewMongoClient(ctx, cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewMongoClient: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database("emogo_test_" + uuid.NewString()[:8])
	store := NewMongoStore(db)

	if err := store.Sentiments.Insert(ctx, &models.Sentiment{UserID: "u1", SentimentScore: 0.8}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Sentiments.Insert(ctx, &models.Sentiment{UserID: "u1", SentimentScore: 0.2}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.Sentiments.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 2 || got[0].SentimentScore != 0.8 || got[1].SentimentScore != 0.2 {
		t.Errorf("FindAll = %+v", got)
	}

	// _id is assigned by the store but never projected back.
	raw, err := db.Collection(models.SentimentsCollection).Find(ctx, bson.D{})
	if err != nil {
		t.Fatalf("raw find: %v", err)
	}
	var docs []bson.M
	if err := raw.All(ctx, &docs); err != nil {
		t.Fatalf("raw decode: %v", err)
	}
	if _, ok := docs[0]["_id"]; !ok {
		t.Error("expected store-assigned _id on raw document")
	}

	n, err := store.Sentiments.DeleteAll(ctx)
	if err != nil || n != 2 {
		t.Errorf("DeleteAll = %d, %v", n, err)
	}

	empty, err := store.GPS.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty FindAll = %#v", empty)
	}
}
