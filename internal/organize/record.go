package organize

import "time"

// Statuses a record moves through. Transitions only go forward:
// ready videos become uploaded or archived, never ready again.
const (
	StatusReady    = "ready_to_upload"
	StatusUploaded = "uploaded"
	StatusArchived = "archived"
)

// Record is one organized video with everything needed for a manual
// upload.
type Record struct {
	RunID      string        `json:"run_id"`
	Video      VideoInfo     `json:"video_info"`
	Post       PostInfo      `json:"reddit_data"`
	Upload     UploadContent `json:"upload_content"`
	Prediction Prediction    `json:"performance_prediction"`
}

type VideoInfo struct {
	VideoPath  string    `json:"video_path"`
	AudioPath  string    `json:"audio_path"`
	Duration   float64   `json:"duration_seconds"`
	FileSizeMB float64   `json:"file_size_mb"`
	CreatedAt  time.Time `json:"created_at"`
	Status     string    `json:"status"`
	LowQuality bool      `json:"low_quality"`
}

type PostInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	URL         string  `json:"url"`
	NumComments int     `json:"num_comments"`
	Author      string  `json:"author"`
	HumorRating float64 `json:"humor_rating"`
	Reasoning   string  `json:"assessment_reasoning"`
}

type UploadContent struct {
	Caption     string   `json:"suggested_caption"`
	Hashtags    []string `json:"suggested_hashtags"`
	Description string   `json:"description"`
	Audiences   []string `json:"target_audience"`
	Category    string   `json:"content_category"`
}

// Prediction extrapolates rough platform metrics from Reddit numbers.
type Prediction struct {
	Views      int     `json:"predicted_views"`
	Likes      int     `json:"predicted_likes"`
	Shares     int     `json:"predicted_shares"`
	Comments   int     `json:"predicted_comments"`
	Confidence int     `json:"confidence_score"`
	Engagement float64 `json:"reddit_engagement_rate"`
}

// QueueItem is one pending upload, highest priority first.
type QueueItem struct {
	RunID     string    `json:"run_id"`
	VideoPath string    `json:"video_path"`
	Caption   string    `json:"caption"`
	Hashtags  []string  `json:"hashtags"`
	Priority  float64   `json:"priority"`
	AddedAt   time.Time `json:"added_at"`
}

// Stats aggregates creation history.
type Stats struct {
	TotalVideos   int            `json:"total_videos_created"`
	Subreddits    map[string]int `json:"subreddits"`
	AverageRating float64        `json:"average_humor_rating"`
	CreationDates []time.Time    `json:"creation_dates"`
}

func predictPerformance(post PostInfo) Prediction {
	score := post.Score
	comments := post.NumComments
	rating := post.HumorRating
	if rating == 0 {
		rating = 5
	}

	denominator := score
	if denominator < 1 {
		denominator = 1
	}
	engagement := float64(comments) / float64(denominator) * 100

	views := score * 5
	if views > 100000 {
		views = 100000
	}
	if views < 1000 {
		views = 1000
	}

	likes := float64(views) * 0.05 * (rating / 10)
	confidence := int(rating * 10)
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 20 {
		confidence = 20
	}

	return Prediction{
		Views:      views,
		Likes:      int(likes),
		Shares:     int(likes * 0.1),
		Comments:   int(float64(views) * 0.02),
		Confidence: confidence,
		Engagement: engagement,
	}
}
