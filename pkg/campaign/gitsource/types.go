package gitsource

import (
	"time"
)

// CommitInfo contains metadata about the checked-out template commit.
type CommitInfo struct {
	SHA        string    `json:"sha"`
	Author     string    `json:"author"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
	Message    string    `json:"message"`
	Branch     string    `json:"branch"`
	Repository string    `json:"repository"`
}

// SyncResult contains the result of a sync operation. An empty FromSHA
// means the sync started from a fresh clone.
type SyncResult struct {
	FromSHA string
	ToSHA   string
	Updated bool
}
