package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "config.yaml"
	defaultOutputDir      = "./output_videos"
	defaultBackgroundDir  = "./background_videos"
	defaultResolution     = "1080x1920"
	defaultUserAgent      = "reddit-tiktok-creator/1.0"
	defaultTimeFilter     = "day"
	defaultPostLimit      = 20
	defaultMinScore       = 100
	defaultMinLength      = 100
	defaultMaxLength      = 1500
	defaultMaxAgeDays     = 7
	defaultMinComments    = 10
	defaultMinRating      = 7.0
	defaultAudience       = "general"
	defaultSafetyLevel    = "moderate"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultScriptStyle    = "engaging"
	defaultSpeechSpeed    = 1.1
	defaultVideoStyle     = "modern"
	defaultRetryAttempts  = 3
	defaultRetryDelaySec  = 2
	defaultIntervalHours  = 4
	defaultMaxPerDay      = 6
	defaultRetryHours     = 2
	defaultMinGapMinutes  = 30
	defaultPeakHours      = "12-14,19-21"
	defaultQuietHours     = "23-6"
	defaultPeakMinRating  = 7.5
	defaultSkipThreshold  = 7.0
	defaultGCSCachePrefix = "backgrounds"
	defaultPollMinutes    = 1
)

var defaultSubreddits = []string{
	"funny", "tifu", "confession", "wholesome", "memes",
	"askreddit", "showerthoughts", "unpopularopinion",
}

var defaultExcludedKeywords = []string{
	"nsfw", "politics", "suicide", "death", "illegal",
}

// Config is the merged view of .env credentials, config.yaml tunables,
// environment overrides, and built-in defaults.
type Config struct {
	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditUserAgent    string
	GroqAPIKey         string
	TTSAPIKey          string
	GoogleCloudProject string
	GCSBucket          string

	Reddit   RedditConfig   `yaml:"reddit"`
	Content  ContentConfig  `yaml:"content"`
	TTS      TTSConfig      `yaml:"tts"`
	Video    VideoConfig    `yaml:"video"`
	Output   OutputConfig   `yaml:"output"`
	System   SystemConfig   `yaml:"system"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

type RedditConfig struct {
	Subreddits       []string `yaml:"subreddits"`
	PostLimit        int      `yaml:"post_limit"`
	TimeFilter       string   `yaml:"time_filter"`
	MinScore         int      `yaml:"min_score"`
	MinLength        int      `yaml:"min_content_length"`
	MaxLength        int      `yaml:"max_content_length"`
	MaxAgeDays       int      `yaml:"max_age_days"`
	MinComments      int      `yaml:"min_comments"`
	ExcludedKeywords []string `yaml:"excluded_keywords"`
}

type ContentConfig struct {
	MinHumorRating float64 `yaml:"min_humor_rating"`
	TargetAudience string  `yaml:"target_audience"`
	SafetyLevel    string  `yaml:"safety_level"`
	GroqModel      string  `yaml:"groq_model"`
}

type TTSConfig struct {
	VoiceStyle  string  `yaml:"voice_style"`
	SpeechSpeed float64 `yaml:"speech_speed"`
	ScriptStyle string  `yaml:"script_style"`
}

type VideoConfig struct {
	Style         string `yaml:"style"`
	Resolution    string `yaml:"resolution"`
	BackgroundDir string `yaml:"background_dir"`
	GCSPrefix     string `yaml:"gcs_prefix"`
}

type OutputConfig struct {
	Directory   string `yaml:"directory"`
	SaveAudio   bool   `yaml:"save_audio"`
	CleanupTemp bool   `yaml:"cleanup_temp"`
}

type SystemConfig struct {
	RetryAttempts int `yaml:"retry_attempts"`
	RetryDelaySec int `yaml:"retry_delay_seconds"`
}

type ScheduleConfig struct {
	IntervalHours   int     `yaml:"interval_hours"`
	MaxVideosPerDay int     `yaml:"max_videos_per_day"`
	RetryHours      int     `yaml:"retry_hours"`
	MinGapMinutes   int     `yaml:"min_gap_minutes"`
	PeakHours       string  `yaml:"peak_hours"`
	QuietHours      string  `yaml:"quiet_hours"`
	WeekendEnabled  bool    `yaml:"weekend_enabled"`
	SkipLowQuality  bool    `yaml:"skip_low_quality"`
	SkipThreshold   float64 `yaml:"skip_threshold"`
	PeakMinRating   float64 `yaml:"peak_min_rating"`
	PollMinutes     int     `yaml:"poll_minutes"`
}

// Load reads .env, config.yaml, and environment overrides, then fills
// in defaults. Credentials come from the environment only.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),
		RedditUserAgent:    getEnvOrDefault("REDDIT_USER_AGENT", defaultUserAgent),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		TTSAPIKey:          os.Getenv("TTS_API_KEY"),
		GoogleCloudProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
	}

	// Boolean defaults are seeded before unmarshal so config.yaml can
	// still turn them off.
	cfg.Schedule.WeekendEnabled = true
	cfg.Schedule.SkipLowQuality = true
	cfg.Output.SaveAudio = true
	cfg.Output.CleanupTemp = true

	loadYAML(cfg)
	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAML(cfg *Config) {
	path := getEnvOrDefault("CONFIG_PATH", defaultConfigPath)
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

// applyEnvOverrides lets individual env vars override yaml values, the
// way the unattended scheduler has historically been configured.
func applyEnvOverrides(cfg *Config) {
	setList(&cfg.Reddit.Subreddits, "REDDIT_SUBREDDITS")
	setInt(&cfg.Reddit.PostLimit, "REDDIT_POST_LIMIT")
	setString(&cfg.Reddit.TimeFilter, "REDDIT_TIME_FILTER")
	setInt(&cfg.Reddit.MinScore, "REDDIT_MIN_SCORE")
	setInt(&cfg.Reddit.MinLength, "REDDIT_MIN_CONTENT_LENGTH")
	setInt(&cfg.Reddit.MaxLength, "REDDIT_MAX_CONTENT_LENGTH")
	setList(&cfg.Reddit.ExcludedKeywords, "REDDIT_EXCLUDED_KEYWORDS")

	setFloat(&cfg.Content.MinHumorRating, "CONTENT_MIN_HUMOR_RATING")
	setString(&cfg.Content.TargetAudience, "CONTENT_TARGET_AUDIENCE")
	setString(&cfg.Content.SafetyLevel, "CONTENT_SAFETY_LEVEL")

	setString(&cfg.TTS.VoiceStyle, "TTS_VOICE_STYLE")
	setFloat(&cfg.TTS.SpeechSpeed, "TTS_SPEECH_SPEED")
	setString(&cfg.TTS.ScriptStyle, "TTS_SCRIPT_STYLE")

	setString(&cfg.Video.Style, "VIDEO_STYLE")
	setString(&cfg.Output.Directory, "OUTPUT_DIRECTORY")

	setInt(&cfg.System.RetryAttempts, "SYSTEM_RETRY_ATTEMPTS")
	setInt(&cfg.System.RetryDelaySec, "SYSTEM_RETRY_DELAY")

	setInt(&cfg.Schedule.IntervalHours, "SCHEDULE_INTERVAL_HOURS")
	setInt(&cfg.Schedule.MaxVideosPerDay, "SCHEDULE_MAX_VIDEOS_PER_DAY")
	setInt(&cfg.Schedule.RetryHours, "SCHEDULE_RETRY_HOURS")
	setInt(&cfg.Schedule.MinGapMinutes, "SCHEDULE_MIN_GAP_MINUTES")
	setString(&cfg.Schedule.PeakHours, "SCHEDULE_PEAK_HOURS")
	setString(&cfg.Schedule.QuietHours, "SCHEDULE_QUIET_HOURS")

	setBool(&cfg.Schedule.WeekendEnabled, "SCHEDULE_WEEKEND_ENABLED")
	setBool(&cfg.Schedule.SkipLowQuality, "SCHEDULE_SKIP_LOW_QUALITY")
	setBool(&cfg.Output.SaveAudio, "OUTPUT_SAVE_AUDIO")
	setBool(&cfg.Output.CleanupTemp, "OUTPUT_CLEANUP_TEMP")
}

func applyDefaults(cfg *Config) {
	if len(cfg.Reddit.Subreddits) == 0 {
		cfg.Reddit.Subreddits = defaultSubreddits
	}
	if cfg.Reddit.PostLimit == 0 {
		cfg.Reddit.PostLimit = defaultPostLimit
	}
	if cfg.Reddit.TimeFilter == "" {
		cfg.Reddit.TimeFilter = defaultTimeFilter
	}
	if cfg.Reddit.MinScore == 0 {
		cfg.Reddit.MinScore = defaultMinScore
	}
	if cfg.Reddit.MinLength == 0 {
		cfg.Reddit.MinLength = defaultMinLength
	}
	if cfg.Reddit.MaxLength == 0 {
		cfg.Reddit.MaxLength = defaultMaxLength
	}
	if cfg.Reddit.MaxAgeDays == 0 {
		cfg.Reddit.MaxAgeDays = defaultMaxAgeDays
	}
	if cfg.Reddit.MinComments == 0 {
		cfg.Reddit.MinComments = defaultMinComments
	}
	if len(cfg.Reddit.ExcludedKeywords) == 0 {
		cfg.Reddit.ExcludedKeywords = defaultExcludedKeywords
	}

	if cfg.Content.MinHumorRating == 0 {
		cfg.Content.MinHumorRating = defaultMinRating
	}
	if cfg.Content.TargetAudience == "" {
		cfg.Content.TargetAudience = defaultAudience
	}
	if cfg.Content.SafetyLevel == "" {
		cfg.Content.SafetyLevel = defaultSafetyLevel
	}
	if cfg.Content.GroqModel == "" {
		cfg.Content.GroqModel = defaultGroqModel
	}

	if cfg.TTS.SpeechSpeed == 0 {
		cfg.TTS.SpeechSpeed = defaultSpeechSpeed
	}
	if cfg.TTS.ScriptStyle == "" {
		cfg.TTS.ScriptStyle = defaultScriptStyle
	}

	if cfg.Video.Style == "" {
		cfg.Video.Style = defaultVideoStyle
	}
	if cfg.Video.Resolution == "" {
		cfg.Video.Resolution = defaultResolution
	}
	if cfg.Video.GCSPrefix == "" {
		cfg.Video.GCSPrefix = defaultGCSCachePrefix
	}
	if cfg.Video.BackgroundDir == "" {
		cfg.Video.BackgroundDir = defaultBackgroundDir
	}

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}

	if cfg.System.RetryAttempts == 0 {
		cfg.System.RetryAttempts = defaultRetryAttempts
	}
	if cfg.System.RetryDelaySec == 0 {
		cfg.System.RetryDelaySec = defaultRetryDelaySec
	}

	if cfg.Schedule.IntervalHours == 0 {
		cfg.Schedule.IntervalHours = defaultIntervalHours
	}
	if cfg.Schedule.MaxVideosPerDay == 0 {
		cfg.Schedule.MaxVideosPerDay = defaultMaxPerDay
	}
	if cfg.Schedule.RetryHours == 0 {
		cfg.Schedule.RetryHours = defaultRetryHours
	}
	if cfg.Schedule.MinGapMinutes == 0 {
		cfg.Schedule.MinGapMinutes = defaultMinGapMinutes
	}
	if cfg.Schedule.PeakHours == "" {
		cfg.Schedule.PeakHours = defaultPeakHours
	}
	if cfg.Schedule.QuietHours == "" {
		cfg.Schedule.QuietHours = defaultQuietHours
	}
	if cfg.Schedule.SkipThreshold == 0 {
		cfg.Schedule.SkipThreshold = defaultSkipThreshold
	}
	if cfg.Schedule.PeakMinRating == 0 {
		cfg.Schedule.PeakMinRating = defaultPeakMinRating
	}
	if cfg.Schedule.PollMinutes == 0 {
		cfg.Schedule.PollMinutes = defaultPollMinutes
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		} else {
			slog.Warn("Ignoring non-numeric env value", "key", key, "value", v)
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		} else {
			slog.Warn("Ignoring non-numeric env value", "key", key, "value", v)
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true") || v == "1"
	}
}

func setList(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}
