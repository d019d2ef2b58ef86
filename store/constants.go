package store

import "time"

const (
	SQLiteFilename = "verification.db"

	DBBusyTimeout  = 120 * time.Second
	DBCacheSizeKiB = 256 * 1024
)
