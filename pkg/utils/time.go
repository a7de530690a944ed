package utils

import (
	"fmt"
	"time"

	"github.com/xeonx/timeago"
)

const MaxTimeAgo = 24 * 365 * 20 * time.Hour // 20 years

func TimeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	config := timeago.English
	config.Max = MaxTimeAgo
	return config.Format(t)
}

// FormatDuration formats d as D-HH:MM:SS, the wall time format of Slurm.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	days, seconds := seconds/(24*3600), seconds%(24*3600)
	hours, seconds := seconds/3600, seconds%3600
	minutes, seconds := seconds/60, seconds%60
	return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, seconds)
}
