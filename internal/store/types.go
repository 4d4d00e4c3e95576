package store

import "time"

// Scan records one completed inventory scan.
type Scan struct {
	ID           int64
	CompletedAt  time.Time
	PackageCount int
	UpdateCount  int
}

// UpdateRun records one update cycle, explicit or bulk.
type UpdateRun struct {
	ID        int64
	StartedAt time.Time
	Bulk      bool
	Requested int
	Succeeded int
	Finished  bool
}

// UpdateResult records the outcome of one update invocation within a run.
type UpdateResult struct {
	RunID      int64
	PackageID  string
	Success    bool
	ErrorText  string
	FinishedAt time.Time
}

// Session records the summary emitted when an engine shuts down.
type Session struct {
	ID        int64
	EndedAt   time.Time
	Total     int
	Updatable int
	Applied   int
}
