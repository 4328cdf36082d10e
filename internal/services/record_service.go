package service

import (
	"context"
	"emogo-service/internal/metrics"
	"emogo-service/internal/models"
	"emogo-service/internal/repository"
	"emogo-service/internal/storage"
	utils "emogo-service/internal/utils"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Fixture records written by PopulateFakeData.
var (
	FakeVlog      = models.Vlog{UserID: "user1", VideoURL: "fake_video.mp4"}
	FakeSentiment = models.Sentiment{UserID: "user1", SentimentScore: 0.8}
	FakeGPS       = models.GPS{UserID: "user1", Latitude: 34.0522, Longitude: -118.2437}
)

type RecordService struct {
	store *repository.Store
	files storage.FileStore
	log   *zap.SugaredLogger
}

func NewRecordService(store *repository.Store, files storage.FileStore, log *zap.SugaredLogger) *RecordService {
	return &RecordService{store: store, files: files, log: log}
}

// UploadVlog writes the video, then records it. A failed insert leaves
// the written file in place.
func (s *RecordService) UploadVlog(ctx context.Context, userID, filename string, r io.Reader) (*models.Vlog, error) {
	cr := &countingReader{r: r}
	if err := s.files.Save(ctx, filename, cr); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", utils.ErrUploadFailed, filename, err)
	}
	metrics.UploadBytes.Add(float64(cr.n))

	vlog := &models.Vlog{UserID: userID, VideoURL: models.VideoURL(filename)}
	if err := insert(ctx, s.store.Vlogs, vlog); err != nil {
		s.log.Warnw("video stored without vlog record", "filename", filename, "user_id", userID, "error", err)
		return nil, err
	}
	s.log.Debugw("vlog uploaded", "filename", filename, "user_id", userID, "bytes", cr.n)
	return vlog, nil
}

func (s *RecordService) CreateSentiment(ctx context.Context, rec models.Sentiment) (models.Sentiment, error) {
	if err := insert(ctx, s.store.Sentiments, &rec); err != nil {
		return models.Sentiment{}, err
	}
	return rec, nil
}

func (s *RecordService) CreateGPS(ctx context.Context, rec models.GPS) (models.GPS, error) {
	if err := insert(ctx, s.store.GPS, &rec); err != nil {
		return models.GPS{}, err
	}
	return rec, nil
}

func (s *RecordService) Vlogs(ctx context.Context) ([]models.Vlog, error) {
	return findAll(ctx, s.store.Vlogs)
}

func (s *RecordService) Sentiments(ctx context.Context) ([]models.Sentiment, error) {
	return findAll(ctx, s.store.Sentiments)
}

func (s *RecordService) GPSPoints(ctx context.Context) ([]models.GPS, error) {
	return findAll(ctx, s.store.GPS)
}

// Snapshot reads all three collections for the listing page.
func (s *RecordService) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	vlogs, err := s.Vlogs(ctx)
	if err != nil {
		return nil, err
	}
	sentiments, err := s.Sentiments(ctx)
	if err != nil {
		return nil, err
	}
	gps, err := s.GPSPoints(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Snapshot{Vlogs: vlogs, Sentiments: sentiments, GPS: gps}, nil
}

func (s *RecordService) VideoExists(ctx context.Context, name string) (bool, error) {
	return s.files.Exists(ctx, name)
}

func (s *RecordService) OpenVideo(ctx context.Context, name string) (*storage.Object, error) {
	return s.files.Open(ctx, name)
}

// PopulateFakeData empties every collection and seeds one fixture record
// into each.
func (s *RecordService) PopulateFakeData(ctx context.Context) error {
	for _, clear := range []func(context.Context) (int64, error){
		s.store.Vlogs.DeleteAll,
		s.store.Sentiments.DeleteAll,
		s.store.GPS.DeleteAll,
	} {
		if _, err := clear(ctx); err != nil {
			return fmt.Errorf("%w: clear: %w", utils.ErrStoreFailure, err)
		}
	}

	vlog, sentiment, gps := FakeVlog, FakeSentiment, FakeGPS
	if err := insert(ctx, s.store.Vlogs, &vlog); err != nil {
		return err
	}
	if err := insert(ctx, s.store.Sentiments, &sentiment); err != nil {
		return err
	}
	if err := insert(ctx, s.store.GPS, &gps); err != nil {
		return err
	}
	s.log.Infow("fake data populated")
	return nil
}

func insert[T any](ctx context.Context, col repository.Collection[T], rec *T) error {
	if err := col.Insert(ctx, rec); err != nil {
		return fmt.Errorf("%w: insert %s: %w", utils.ErrStoreFailure, col.Name(), err)
	}
	metrics.RecordsCreated.WithLabelValues(col.Name()).Inc()
	return nil
}

func findAll[T any](ctx context.Context, col repository.Collection[T]) ([]T, error) {
	recs, err := col.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %w", utils.ErrStoreFailure, col.Name(), err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
