package schedule

import (
	"fmt"
	"time"

	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

// Gate decides whether a run may start at now. The returned reason
// names the first rule that blocked it.
func Gate(state State, cfg config.ScheduleConfig, now time.Time) (bool, string) {
	if quiet, err := cfg.QuietWindow(); err == nil && quiet.Contains(now.Hour()) {
		return false, fmt.Sprintf("quiet hours (%s)", cfg.QuietHours)
	}

	if !cfg.WeekendEnabled {
		if day := now.Weekday(); day == time.Saturday || day == time.Sunday {
			return false, "weekends disabled"
		}
	}

	if count := state.CountFor(now); count >= cfg.MaxVideosPerDay {
		return false, fmt.Sprintf("daily limit reached (%d/%d)", count, cfg.MaxVideosPerDay)
	}

	if !state.LastRun.IsZero() {
		if gap := now.Sub(state.LastRun); gap < time.Duration(cfg.MinGapMinutes)*time.Minute {
			return false, fmt.Sprintf("only %s since last run, minimum gap is %dm", gap.Round(time.Second), cfg.MinGapMinutes)
		}
	}

	// A failed attempt delays the next one by the retry interval
	// instead of the normal creation interval.
	if state.LastFailure.After(state.LastRun) {
		wait := time.Duration(cfg.RetryHours) * time.Hour
		if since := now.Sub(state.LastFailure); since < wait {
			return false, fmt.Sprintf("retrying in %s after failure", (wait - since).Round(time.Minute))
		}
	} else if !state.LastRun.IsZero() {
		wait := time.Duration(cfg.IntervalHours) * time.Hour
		if since := now.Sub(state.LastRun); since < wait {
			return false, fmt.Sprintf("next run in %s", (wait - since).Round(time.Minute))
		}
	}

	return true, ""
}

// PeakAdjust tightens the rating threshold and switches to the dynamic
// look during peak hours. Outside them it returns the inputs unchanged.
func PeakAdjust(cfg config.ScheduleConfig, minRating float64, style string, now time.Time) (float64, string) {
	peaks, err := cfg.PeakWindows()
	if err != nil {
		return minRating, style
	}
	for _, window := range peaks {
		if window.Contains(now.Hour()) {
			if cfg.PeakMinRating > minRating {
				minRating = cfg.PeakMinRating
			}
			return minRating, "dynamic"
		}
	}
	return minRating, style
}
