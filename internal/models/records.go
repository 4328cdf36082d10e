package models

// Collection names in the document store.
const (
	VlogsCollection      = "vlogs"
	SentimentsCollection = "sentiments"
	GPSCollection        = "gps"
)

// Vlog points at an uploaded video in file storage.
type Vlog struct {
	UserID   string `bson:"user_id" json:"user_id"`
	VideoURL string `bson:"video_url" json:"video_url"` // /videos/<filename>
}

type Sentiment struct {
	UserID         string  `bson:"user_id" json:"user_id"`
	SentimentScore float64 `bson:"sentiment_score" json:"sentiment_score"`
}

type GPS struct {
	UserID    string  `bson:"user_id" json:"user_id"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// VideoURL is the path a vlog record uses to reference its file.
func VideoURL(filename string) string {
	return "/videos/" + filename
}

// Snapshot is every record of every collection, as rendered on /data.
type Snapshot struct {
	Vlogs      []Vlog
	Sentiments []Sentiment
	GPS        []GPS
}
