package views

import (
	"bytes"
	"emogo-service/internal/models"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderDataListsEveryRecord(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	page := DataPage{
		Title: "EmoGo Backend",
		Snapshot: &models.Snapshot{
			Vlogs:      []models.Vlog{{UserID: "user1", VideoURL: "/videos/a.mp4"}},
			Sentiments: []models.Sentiment{{UserID: "user1", SentimentScore: 0.8}, {UserID: "user2", SentimentScore: -0.3}},
			GPS:        []models.GPS{{UserID: "user1", Latitude: 34.0522, Longitude: -118.2437}},
		},
	}
	var buf bytes.Buffer
	if err := r.RenderData(&buf, page); err != nil {
		t.Fatalf("RenderData: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"/videos/a.mp4", "0.8", "-0.3", "user2", "34.0522", "-118.2437", "Sentiments (2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderDataEscapesUserInput(t *testing.T) {
	r, _ := NewRenderer("")
	page := DataPage{Snapshot: &models.Snapshot{
		Sentiments: []models.Sentiment{{UserID: "<script>alert(1)</script>"}},
	}}
	var buf bytes.Buffer
	if err := r.RenderData(&buf, page); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("user_id rendered unescaped")
	}
	if !strings.Contains(buf.String(), "No vlogs.") {
		t.Error("empty section placeholder missing")
	}
}

func TestNewRendererFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.html")
	_ = os.WriteFile(p, []byte(`{{ .Title }}:{{ len .Vlogs }}`), 0o644)

	r, err := NewRenderer(p)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	var buf bytes.Buffer
	_ = r.RenderData(&buf, DataPage{Title: "custom", Snapshot: &models.Snapshot{}})
	if buf.String() != "custom:0" {
		t.Errorf("got %q", buf.String())
	}

	if _, err := NewRenderer(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing template")
	}
}
