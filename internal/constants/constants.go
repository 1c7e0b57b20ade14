package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ImageTimeout    = 10 * time.Second
	BackupTimeout   = 60 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// BadgeCacheTTL bounds how long a computed badge collection may be served
	// before the recency window is re-evaluated against the clock.
	BadgeCacheTTL = 5 * time.Minute

	// RecentBadgeWindow is the trailing period during which a badge counts
	// as "new" for the notification indicator.
	RecentBadgeWindow = 15 * 24 * time.Hour

	// MinutesPerSession approximates play time for stat summaries.
	MinutesPerSession = 40
)

const (
	TopPlayCountLimit = 100
)
