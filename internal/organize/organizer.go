// Package organize files finished videos into upload folders and keeps
// the metadata, queue, and stats records current.
package organize

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/adjosc/reddit-tiktok-creator/internal/assess"
)

// ErrDuplicate is returned when a run's video has already been
// organized.
var ErrDuplicate = errors.New("video already organized for this run")

const (
	metadataFile = "video_metadata.json"
	queueFile    = "upload_queue.json"
	statsFile    = "creation_stats.json"

	readyDirName    = "ready_to_upload"
	uploadedDirName = "uploaded"
	archiveDirName  = "archive"

	keepCreationDates = 100
)

// Organizer owns the output directory layout and its JSON records.
type Organizer struct {
	mu        sync.Mutex
	outputDir string
	now       func() time.Time
}

// New creates the output directory tree.
func New(outputDir string) (*Organizer, error) {
	o := &Organizer{
		outputDir: outputDir,
		now:       time.Now,
	}

	for _, dir := range []string{
		outputDir,
		o.readyDir(),
		o.uploadedDir(),
		o.archiveDir(),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return o, nil
}

func (o *Organizer) readyDir() string    { return filepath.Join(o.outputDir, readyDirName) }
func (o *Organizer) uploadedDir() string { return filepath.Join(o.outputDir, uploadedDirName) }
func (o *Organizer) archiveDir() string  { return filepath.Join(o.outputDir, archiveDirName) }

// OrganizeRequest carries everything Organize needs for one video.
type OrganizeRequest struct {
	RunID      string
	Rated      assess.Rated
	VideoPath  string
	AudioPath  string
	Duration   float64
	LowQuality bool
}

// Organize moves the video into ready_to_upload, appends its metadata
// record, queues it for upload, and updates creation stats. A run can
// be organized once; repeats return ErrDuplicate.
// readyName builds a per-run filename for the ready folder.
func readyName(runID, videoPath string) string {
	ext := filepath.Ext(videoPath)
	if ext == "" {
		ext = ".mp4"
	}
	return "reddit_video_" + runID + ext
}

func (o *Organizer) Organize(req OrganizeRequest) (*Record, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	records, err := o.loadRecords()
	if err != nil {
		return nil, err
	}
	for _, existing := range records {
		if existing.RunID == req.RunID {
			return nil, fmt.Errorf("run %s: %w", req.RunID, ErrDuplicate)
		}
	}

	post := PostInfo{
		ID:          req.Rated.Post.ID,
		Title:       req.Rated.Post.Title,
		Subreddit:   req.Rated.Post.Subreddit,
		Score:       req.Rated.Post.Score,
		URL:         req.Rated.Post.Permalink,
		NumComments: req.Rated.Post.NumComments,
		Author:      req.Rated.Post.Author,
		HumorRating: req.Rated.Rating,
		Reasoning:   req.Rated.Reasoning,
	}

	// Run scratch dirs all name their video the same way, so the ready
	// file takes its name from the run instead.
	readyPath := filepath.Join(o.readyDir(), readyName(req.RunID, req.VideoPath))
	if _, err := os.Stat(readyPath); err == nil {
		return nil, fmt.Errorf("ready file already exists: %s", readyPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("check ready path: %w", err)
	}
	if err := os.Rename(req.VideoPath, readyPath); err != nil {
		return nil, fmt.Errorf("move video to ready folder: %w", err)
	}

	record := Record{
		RunID: req.RunID,
		Video: VideoInfo{
			VideoPath:  readyPath,
			AudioPath:  req.AudioPath,
			Duration:   req.Duration,
			FileSizeMB: fileSizeMB(readyPath),
			CreatedAt:  o.now().UTC(),
			Status:     StatusReady,
			LowQuality: req.LowQuality,
		},
		Post: post,
		Upload: UploadContent{
			Caption:     generateCaption(post),
			Hashtags:    generateHashtags(post, req.Rated.Post.Body),
			Description: generateDescription(post),
			Audiences:   determineAudiences(post, req.Rated.Post.Body),
			Category:    categorize(post),
		},
		Prediction: predictPerformance(post),
	}

	records = append(records, record)
	if err := o.saveJSON(metadataFile, records); err != nil {
		return nil, err
	}

	if err := o.enqueue(record); err != nil {
		return nil, err
	}
	if err := o.updateStats(record); err != nil {
		return nil, err
	}

	slog.Info("Video organized",
		"run_id", req.RunID,
		"video", filepath.Base(readyPath),
		"rating", post.HumorRating,
		"low_quality", req.LowQuality)

	return &record, nil
}

// List returns up to limit records, newest first, filtered by status.
// An empty filter or "all" returns everything.
func (o *Organizer) List(limit int, filter string) ([]Record, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	records, err := o.loadRecords()
	if err != nil {
		return nil, err
	}

	var out []Record
	for i := len(records) - 1; i >= 0; i-- {
		if filter != "" && filter != "all" && records[i].Video.Status != filter {
			continue
		}
		out = append(out, records[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// MarkUploaded moves a ready video to the uploaded folder, flips its
// record status, and drops it from the queue.
func (o *Organizer) MarkUploaded(runID string) error {
	return o.transition(runID, StatusReady, StatusUploaded, o.uploadedDir())
}

// Archive moves a video to the archive folder. Both ready and uploaded
// videos can be archived.
func (o *Organizer) Archive(runID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.move(runID, o.archiveDir(), StatusArchived, func(status string) bool {
		return status == StatusReady || status == StatusUploaded
	})
}

func (o *Organizer) transition(runID, from, to, destDir string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.move(runID, destDir, to, func(status string) bool {
		return status == from
	})
}

func (o *Organizer) move(runID, destDir, newStatus string, allowed func(string) bool) error {
	records, err := o.loadRecords()
	if err != nil {
		return err
	}

	idx := -1
	for i, r := range records {
		if r.RunID == runID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no record for run %s", runID)
	}
	if !allowed(records[idx].Video.Status) {
		return fmt.Errorf("run %s is %s, cannot become %s", runID, records[idx].Video.Status, newStatus)
	}

	oldPath := records[idx].Video.VideoPath
	newPath := filepath.Join(destDir, filepath.Base(oldPath))
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("move video: %w", err)
	}

	records[idx].Video.VideoPath = newPath
	records[idx].Video.Status = newStatus
	if err := o.saveJSON(metadataFile, records); err != nil {
		return err
	}

	return o.dequeue(runID)
}

// Queue returns pending uploads, highest priority first.
func (o *Organizer) Queue() ([]QueueItem, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loadQueue()
}

// ClearQueue empties the upload queue without touching video files.
func (o *Organizer) ClearQueue() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.saveJSON(queueFile, []QueueItem{})
}

// Stats returns aggregate creation statistics.
func (o *Organizer) Stats() (Stats, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loadStats()
}

// CleanupOld deletes uploaded and archived files older than the given
// age.
func (o *Organizer) CleanupOld(age time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	cutoff := o.now().Add(-age)
	for _, dir := range []string{o.uploadedDir(), o.archiveDir()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					slog.Warn("Could not remove old file", "path", path, "error", err)
					continue
				}
				slog.Info("Cleaned up old file", "path", path)
			}
		}
	}
	return nil
}

func (o *Organizer) enqueue(record Record) error {
	queue, err := o.loadQueue()
	if err != nil {
		return err
	}

	queue = append(queue, QueueItem{
		RunID:     record.RunID,
		VideoPath: record.Video.VideoPath,
		Caption:   record.Upload.Caption,
		Hashtags:  record.Upload.Hashtags,
		Priority:  record.Post.HumorRating,
		AddedAt:   o.now().UTC(),
	})
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].Priority > queue[j].Priority })

	return o.saveJSON(queueFile, queue)
}

func (o *Organizer) dequeue(runID string) error {
	queue, err := o.loadQueue()
	if err != nil {
		return err
	}

	kept := queue[:0]
	for _, item := range queue {
		if item.RunID != runID {
			kept = append(kept, item)
		}
	}
	return o.saveJSON(queueFile, kept)
}

func (o *Organizer) updateStats(record Record) error {
	stats, err := o.loadStats()
	if err != nil {
		return err
	}
	if stats.Subreddits == nil {
		stats.Subreddits = make(map[string]int)
	}

	stats.TotalVideos++
	stats.Subreddits[record.Post.Subreddit]++

	if rating := record.Post.HumorRating; rating > 0 {
		prev := stats.AverageRating * float64(stats.TotalVideos-1)
		stats.AverageRating = (prev + rating) / float64(stats.TotalVideos)
	}

	stats.CreationDates = append(stats.CreationDates, o.now().UTC())
	if len(stats.CreationDates) > keepCreationDates {
		stats.CreationDates = stats.CreationDates[len(stats.CreationDates)-keepCreationDates:]
	}

	return o.saveJSON(statsFile, stats)
}

func (o *Organizer) loadRecords() ([]Record, error) {
	var records []Record
	if err := o.loadJSON(metadataFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (o *Organizer) loadQueue() ([]QueueItem, error) {
	var queue []QueueItem
	if err := o.loadJSON(queueFile, &queue); err != nil {
		return nil, err
	}
	return queue, nil
}

func (o *Organizer) loadStats() (Stats, error) {
	var stats Stats
	if err := o.loadJSON(statsFile, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (o *Organizer) loadJSON(name string, dst any) error {
	data, err := os.ReadFile(filepath.Join(o.outputDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A corrupted record file should not wedge the pipeline.
		slog.Warn("Record file corrupted, starting fresh", "file", name, "error", err)
		return nil
	}
	return nil
}

func (o *Organizer) saveJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(o.outputDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func fileSizeMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / (1024 * 1024)
}
