package organize

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adjosc/reddit-tiktok-creator/internal/assess"
	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
)

func newTestOrganizer(t *testing.T) *Organizer {
	t.Helper()
	o, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o
}

func testRated(id string, rating float64) assess.Rated {
	return assess.Rated{
		Post: reddit.Post{
			ID:          id,
			Title:       "TIFU by testing in production",
			Body:        "So there I was, deploying on a Friday afternoon.",
			Subreddit:   "tifu",
			Author:      "throwaway123",
			Permalink:   "https://reddit.com/r/tifu/comments/" + id,
			Score:       2500,
			NumComments: 340,
		},
		Rating:    rating,
		Reasoning: "Relatable workplace humor",
	}
}

func writeVideo(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake mp4 bytes"), 0644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	return path
}

func organizeOne(t *testing.T, o *Organizer, runID string, rating float64) *Record {
	t.Helper()
	rec, err := o.Organize(OrganizeRequest{
		RunID:     runID,
		Rated:     testRated("p-"+runID, rating),
		VideoPath: writeVideo(t, runID+".mp4"),
		AudioPath: "/tmp/" + runID + ".mp3",
		Duration:  42.5,
	})
	if err != nil {
		t.Fatalf("Organize %s: %v", runID, err)
	}
	return rec
}

func TestOrganizeKeepsVideosWithSameScratchName(t *testing.T) {
	o := newTestOrganizer(t)

	organizeFrom := func(runID, content string) *Record {
		t.Helper()
		path := filepath.Join(t.TempDir(), "video.mp4")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write video: %v", err)
		}
		rec, err := o.Organize(OrganizeRequest{
			RunID:     runID,
			Rated:     testRated("p-"+runID, 8.0),
			VideoPath: path,
			Duration:  30,
		})
		if err != nil {
			t.Fatalf("Organize %s: %v", runID, err)
		}
		return rec
	}

	first := organizeFrom("run-1", "first run bytes")
	second := organizeFrom("run-2", "second run bytes")

	if first.Video.VideoPath == second.Video.VideoPath {
		t.Fatalf("both records point at %s", first.Video.VideoPath)
	}
	got, err := os.ReadFile(first.Video.VideoPath)
	if err != nil {
		t.Fatalf("read first video: %v", err)
	}
	if string(got) != "first run bytes" {
		t.Errorf("first run's video = %q, want its own bytes", got)
	}
}

func TestOrganizeRefusesToOverwriteReadyFile(t *testing.T) {
	o := newTestOrganizer(t)

	src := writeVideo(t, "video.mp4")
	ready := filepath.Join(o.readyDir(), readyName("run-1", src))
	if err := os.WriteFile(ready, []byte("already here"), 0644); err != nil {
		t.Fatalf("seed ready file: %v", err)
	}

	_, err := o.Organize(OrganizeRequest{
		RunID:     "run-1",
		Rated:     testRated("p-run-1", 8.0),
		VideoPath: src,
		Duration:  30,
	})
	if err == nil {
		t.Fatal("expected error when the ready file already exists")
	}
	got, readErr := os.ReadFile(ready)
	if readErr != nil || string(got) != "already here" {
		t.Errorf("ready file was disturbed: %q %v", got, readErr)
	}
}

func TestOrganizeMovesVideoAndRecords(t *testing.T) {
	o := newTestOrganizer(t)

	rec := organizeOne(t, o, "run-1", 8.2)

	if rec.Video.Status != StatusReady {
		t.Errorf("status = %q, want %q", rec.Video.Status, StatusReady)
	}
	if dir := filepath.Dir(rec.Video.VideoPath); filepath.Base(dir) != readyDirName {
		t.Errorf("video moved to %s, want %s", dir, readyDirName)
	}
	if _, err := os.Stat(rec.Video.VideoPath); err != nil {
		t.Errorf("video file missing after organize: %v", err)
	}
	if rec.Video.FileSizeMB <= 0 {
		t.Error("expected non-zero file size")
	}
	if rec.Upload.Caption == "" || len(rec.Upload.Hashtags) == 0 {
		t.Error("expected generated upload content")
	}
	if rec.Prediction.Views == 0 {
		t.Error("expected a performance prediction")
	}

	records, err := o.List(0, "all")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].RunID != "run-1" {
		t.Errorf("records = %+v, want single run-1", records)
	}
}

func TestOrganizeRejectsDuplicateRun(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-1", 8.0)

	_, err := o.Organize(OrganizeRequest{
		RunID:     "run-1",
		Rated:     testRated("p-other", 9.0),
		VideoPath: writeVideo(t, "other.mp4"),
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}

func TestQueueOrderedByPriority(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-low", 7.1)
	organizeOne(t, o, "run-high", 9.4)
	organizeOne(t, o, "run-mid", 8.0)

	queue, err := o.Queue()
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}

	var got []string
	for _, item := range queue {
		got = append(got, item.RunID)
	}
	want := []string{"run-high", "run-mid", "run-low"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("queue order = %v, want %v", got, want)
	}
}

func TestMarkUploadedMovesAndDequeues(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-1", 8.0)
	organizeOne(t, o, "run-2", 7.5)

	if err := o.MarkUploaded("run-1"); err != nil {
		t.Fatalf("MarkUploaded: %v", err)
	}

	uploaded, err := o.List(0, StatusUploaded)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(uploaded) != 1 || uploaded[0].RunID != "run-1" {
		t.Fatalf("uploaded = %+v, want run-1", uploaded)
	}
	if dir := filepath.Base(filepath.Dir(uploaded[0].Video.VideoPath)); dir != uploadedDirName {
		t.Errorf("video in %s, want %s", dir, uploadedDirName)
	}
	if _, err := os.Stat(uploaded[0].Video.VideoPath); err != nil {
		t.Errorf("uploaded file missing: %v", err)
	}

	queue, err := o.Queue()
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(queue) != 1 || queue[0].RunID != "run-2" {
		t.Errorf("queue = %+v, want only run-2", queue)
	}

	// A second upload of the same run fails.
	if err := o.MarkUploaded("run-1"); err == nil {
		t.Error("expected error marking uploaded twice")
	}
}

func TestMarkUploadedUnknownRun(t *testing.T) {
	o := newTestOrganizer(t)
	if err := o.MarkUploaded("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestArchiveFromReadyAndUploaded(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-1", 8.0)
	organizeOne(t, o, "run-2", 8.0)
	if err := o.MarkUploaded("run-2"); err != nil {
		t.Fatalf("MarkUploaded: %v", err)
	}

	for _, runID := range []string{"run-1", "run-2"} {
		if err := o.Archive(runID); err != nil {
			t.Fatalf("Archive %s: %v", runID, err)
		}
	}

	archived, err := o.List(0, StatusArchived)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(archived) != 2 {
		t.Fatalf("archived %d records, want 2", len(archived))
	}
	for _, rec := range archived {
		if dir := filepath.Base(filepath.Dir(rec.Video.VideoPath)); dir != archiveDirName {
			t.Errorf("run %s in %s, want %s", rec.RunID, dir, archiveDirName)
		}
	}

	// Archiving an archived video fails.
	if err := o.Archive("run-1"); err == nil {
		t.Error("expected error archiving twice")
	}
}

func TestListFiltersAndLimits(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-1", 8.0)
	organizeOne(t, o, "run-2", 8.0)
	organizeOne(t, o, "run-3", 8.0)
	if err := o.MarkUploaded("run-2"); err != nil {
		t.Fatalf("MarkUploaded: %v", err)
	}

	ready, err := o.List(0, StatusReady)
	if err != nil {
		t.Fatalf("List ready: %v", err)
	}
	if len(ready) != 2 {
		t.Errorf("ready = %d records, want 2", len(ready))
	}

	limited, err := o.List(1, "all")
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "run-3" {
		t.Errorf("limited = %+v, want newest run-3", limited)
	}
}

func TestStatsAccumulate(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-1", 8.0)
	organizeOne(t, o, "run-2", 9.0)

	stats, err := o.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVideos != 2 {
		t.Errorf("TotalVideos = %d, want 2", stats.TotalVideos)
	}
	if stats.Subreddits["tifu"] != 2 {
		t.Errorf("tifu count = %d, want 2", stats.Subreddits["tifu"])
	}
	if stats.AverageRating != 8.5 {
		t.Errorf("AverageRating = %v, want 8.5", stats.AverageRating)
	}
	if len(stats.CreationDates) != 2 {
		t.Errorf("CreationDates = %d, want 2", len(stats.CreationDates))
	}
}

func TestClearQueue(t *testing.T) {
	o := newTestOrganizer(t)

	organizeOne(t, o, "run-1", 8.0)
	if err := o.ClearQueue(); err != nil {
		t.Fatalf("ClearQueue: %v", err)
	}

	queue, err := o.Queue()
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("queue = %d items, want empty", len(queue))
	}

	// Records themselves are untouched.
	records, err := o.List(0, "all")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
}

func TestLoadRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	o, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, metadataFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	organizeOne(t, o, "run-1", 8.0)

	records, err := o.List(0, "all")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 after recovery", len(records))
	}
}

func TestPredictPerformanceClamps(t *testing.T) {
	low := predictPerformance(PostInfo{Score: 10, HumorRating: 5})
	if low.Views != 1000 {
		t.Errorf("low views = %d, want floor 1000", low.Views)
	}

	high := predictPerformance(PostInfo{Score: 500000, HumorRating: 10})
	if high.Views != 100000 {
		t.Errorf("high views = %d, want cap 100000", high.Views)
	}
	if high.Confidence != 100 {
		t.Errorf("confidence = %v, want cap 100", high.Confidence)
	}
}

func TestGenerateHashtagsDedupedAndCapped(t *testing.T) {
	post := PostInfo{Subreddit: "tifu", Title: "my boss and my wife at work"}
	body := "school food travel technology dog cat relationship family job office teacher pizza"

	tags := generateHashtags(post, body)
	if len(tags) > 15 {
		t.Errorf("got %d hashtags, want at most 15", len(tags))
	}

	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			t.Errorf("duplicate hashtag %q", tag)
		}
		seen[tag] = true
	}
	for _, want := range []string{"reddit", "story", "tifu"} {
		if !seen[want] {
			t.Errorf("missing hashtag %q in %v", want, tags)
		}
	}
}

func TestGenerateCaptionIncludesShortTitle(t *testing.T) {
	short := PostInfo{Subreddit: "tifu", Title: "I broke prod"}
	caption := generateCaption(short)
	if !strings.Contains(caption, `"I broke prod"`) {
		t.Errorf("caption %q missing quoted title", caption)
	}
	if !strings.Contains(caption, "Follow for more Reddit stories!") {
		t.Errorf("caption %q missing follow suffix", caption)
	}

	long := PostInfo{Subreddit: "tifu", Title: strings.Repeat("a very long title ", 10)}
	if got := generateCaption(long); strings.Contains(got, long.Title) {
		t.Errorf("caption should not embed long title: %q", got)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		post PostInfo
		want string
	}{
		{PostInfo{Subreddit: "tifu"}, "embarrassing_stories"},
		{PostInfo{Subreddit: "amitheasshole"}, "moral_dilemmas"},
		{PostInfo{Subreddit: "tifu", Title: "TIFU with my girlfriend"}, "embarrassing_stories_relationship"},
		{PostInfo{Subreddit: "confession", Title: "I lied to my boss"}, "personal_confessions_workplace"},
		{PostInfo{Subreddit: "unknownsub"}, "general_stories"},
	}
	for _, tt := range tests {
		if got := categorize(tt.post); got != tt.want {
			t.Errorf("categorize(%s, %q) = %q, want %q", tt.post.Subreddit, tt.post.Title, got, tt.want)
		}
	}
}
