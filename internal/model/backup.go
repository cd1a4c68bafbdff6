package model

import "time"

// BackupRecord proves that a file's pre-mutation content was persisted. A
// record must exist before the file it references is overwritten; the backup
// manager is the only component allowed to restore one.
type BackupRecord struct {
	OriginalPath Path
	BackupPath   Path
	RunID        string
	CreatedAt    time.Time
}
