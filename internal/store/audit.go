package store

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/blackwell-systems/wingup/internal/engine"
	"github.com/blackwell-systems/wingup/internal/winget"
)

// Audit persists engine events to the store. Persistence is best-effort:
// an audit write failure is reported on stderr and never interrupts the
// cycle that produced the event.
//
// Audit implements engine.EventSink. UpdateResult events may arrive from a
// worker goroutine; the run id is guarded accordingly.
type Audit struct {
	store *Store

	mu    sync.Mutex
	runID int64
}

// NewAudit wraps a store as an engine event sink.
func NewAudit(s *Store) *Audit {
	return &Audit{store: s}
}

// ScanCompleted replaces the stored inventory snapshot and appends a scan
// row.
func (a *Audit) ScanCompleted(records []*winget.PackageRecord) {
	if err := a.store.ReplaceInventory(records); err != nil {
		auditWarn("persist inventory", err)
		return
	}
	if err := a.store.RecordScan(time.Now(), len(records), engine.UpdateCount(records)); err != nil {
		auditWarn("record scan", err)
	}
}

// UpdatesFound refreshes the stored snapshot with the reconciled available
// versions.
func (a *Audit) UpdatesFound(records []*winget.PackageRecord) {
	if err := a.store.ReplaceInventory(records); err != nil {
		auditWarn("persist reconciled inventory", err)
	}
}

// UpdateStarted opens a new update run row.
func (a *Audit) UpdateStarted(ids []string, bulk bool) {
	runID, err := a.store.BeginUpdateRun(time.Now(), bulk, len(ids))
	if err != nil {
		auditWarn("begin update run", err)
		return
	}
	a.mu.Lock()
	a.runID = runID
	a.mu.Unlock()
}

// UpdateResult appends one per-item outcome row to the current run.
func (a *Audit) UpdateResult(id string, success bool, errText string) {
	a.mu.Lock()
	runID := a.runID
	a.mu.Unlock()
	if runID == 0 {
		return // run row could not be created
	}
	if err := a.store.RecordUpdateResult(runID, id, success, errText, time.Now()); err != nil {
		auditWarn("record update result", err)
	}
}

// SessionSummary appends the end-of-session row.
func (a *Audit) SessionSummary(total, updatable, applied int) {
	if err := a.store.RecordSession(time.Now(), total, updatable, applied); err != nil {
		auditWarn("record session", err)
	}
}

// FinishRun closes out the current run with its final success count. Called
// by the command layer once the update summary is known; in bulk mode there
// are no per-item events to derive the count from.
func (a *Audit) FinishRun(succeeded int) {
	a.mu.Lock()
	runID := a.runID
	a.runID = 0
	a.mu.Unlock()
	if runID == 0 {
		return
	}
	if err := a.store.FinishUpdateRun(runID, succeeded); err != nil {
		auditWarn("finish update run", err)
	}
}

func auditWarn(op string, err error) {
	fmt.Fprintf(os.Stderr, "wingup: audit: %s: %v\n", op, err)
}
