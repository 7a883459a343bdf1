package models

import "time"

const SnapshotVersion = "1.0.0"

// Snapshot is a point-in-time copy of every collection. It owns its data.
type Snapshot struct {
	Posts     []Post       `json:"posts"`
	Comments  []Comment    `json:"comments"`
	Settings  SiteSettings `json:"settings"`
	Analytics []Analytics  `json:"analytics"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
}

type Export struct {
	Snapshot
	ExportedAt time.Time `json:"exportedAt"`
}

type BackupInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
