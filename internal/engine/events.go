package engine

import "github.com/blackwell-systems/wingup/internal/winget"

// EventSink receives the discrete events the engine emits so a collaborator
// can persist them. ScanCompleted, UpdatesFound and SessionSummary are
// delivered from the coordinating goroutine; UpdateStarted and UpdateResult
// may arrive from a worker goroutine, so implementations must be safe for
// concurrent use.
type EventSink interface {
	ScanCompleted(records []*winget.PackageRecord)
	UpdatesFound(records []*winget.PackageRecord)
	UpdateStarted(ids []string, bulk bool)
	UpdateResult(id string, success bool, errText string)
	SessionSummary(total, updatable, applied int)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) ScanCompleted([]*winget.PackageRecord) {}
func (NopSink) UpdatesFound([]*winget.PackageRecord)  {}
func (NopSink) UpdateStarted([]string, bool)          {}
func (NopSink) UpdateResult(string, bool, string)     {}
func (NopSink) SessionSummary(int, int, int)          {}

// MultiSink delivers each event to every wrapped sink in order.
type MultiSink []EventSink

func (m MultiSink) ScanCompleted(records []*winget.PackageRecord) {
	for _, s := range m {
		s.ScanCompleted(records)
	}
}

func (m MultiSink) UpdatesFound(records []*winget.PackageRecord) {
	for _, s := range m {
		s.UpdatesFound(records)
	}
}

func (m MultiSink) UpdateStarted(ids []string, bulk bool) {
	for _, s := range m {
		s.UpdateStarted(ids, bulk)
	}
}

func (m MultiSink) UpdateResult(id string, success bool, errText string) {
	for _, s := range m {
		s.UpdateResult(id, success, errText)
	}
}

func (m MultiSink) SessionSummary(total, updatable, applied int) {
	for _, s := range m {
		s.SessionSummary(total, updatable, applied)
	}
}
