// Package engine drives the scan / check / update cycles against the
// external package manager and owns the in-memory record set.
//
// A single coordinating goroutine applies all record-set mutation. External
// command invocations run on one-shot worker goroutines that report back
// over a channel; at most one worker is in flight at a time, enforced by
// the cycle state machine rather than by locking the record set. A request
// arriving while a cycle is in flight is rejected with ErrBusy, not queued.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/blackwell-systems/wingup/internal/winget"
)

var (
	// ErrBusy reports that a scan, check or update cycle is already in
	// flight. The new request is dropped, not deferred.
	ErrBusy = errors.New("another operation is already in progress")

	// ErrClosed reports that the engine has been shut down.
	ErrClosed = errors.New("engine is closed")

	// ErrNothingToUpdate reports that no record currently has an update.
	ErrNothingToUpdate = errors.New("no packages with updates available")
)

// State identifies the active cycle.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateChecking
	StateUpdating
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateChecking:
		return "checking"
	case StateUpdating:
		return "updating"
	default:
		return "idle"
	}
}

// ScanResult is the outcome of one inventory scan cycle.
type ScanResult struct {
	Records []*winget.PackageRecord
	Err     error
}

// CheckResult is the outcome of one upgrade check cycle, after
// reconciliation has been applied to the record set.
type CheckResult struct {
	Records     []*winget.PackageRecord
	Matched     int // records that matched an upgrade map entry
	UpdateCount int // records with an update available after reconciling
	Err         error
}

// UpdateOutcome is the per-item result of one update invocation.
type UpdateOutcome struct {
	ID      string
	Success bool
	ErrText string // raw error text from the failed invocation
}

// UpdateSummary is the outcome of one update cycle.
//
// In bulk mode a single exit code stands for the whole batch: Outcomes
// stays empty because per-item attribution is impossible and is not
// fabricated, and a failure reports the entire batch failed even though
// individual packages may have succeeded.
type UpdateSummary struct {
	Requested []string
	Bulk      bool
	Succeeded int
	Outcomes  []UpdateOutcome
	ErrText   string // bulk failure detail
	Err       error  // tool-level failure, e.g. winget.ErrToolUnavailable
	Records   []*winget.PackageRecord
}

// completion is the message a worker sends back to the coordinator.
type completion struct {
	state   State
	err     error
	records []*winget.PackageRecord
	updates winget.UpgradeMap
	summary *UpdateSummary

	scanReply   chan ScanResult
	checkReply  chan CheckResult
	updateReply chan UpdateSummary
}

// Engine coordinates cycles against a Runner and reports events to a sink.
type Engine struct {
	runner winget.Runner
	sink   EventSink

	mu      sync.Mutex
	state   State
	closed  bool
	records []*winget.PackageRecord
	applied int

	completions chan completion
	quit        chan struct{}
	loopDone    chan struct{}
}

// New creates an Engine and starts its coordinating goroutine. A nil sink
// is replaced with NopSink.
func New(runner winget.Runner, sink EventSink) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	e := &Engine{
		runner:      runner,
		sink:        sink,
		completions: make(chan completion),
		quit:        make(chan struct{}),
		loopDone:    make(chan struct{}),
	}
	go e.loop()
	return e
}

// loop is the coordinating goroutine. It alone applies worker completions
// to the record set, in the order they arrive.
func (e *Engine) loop() {
	defer close(e.loopDone)
	for {
		select {
		case c := <-e.completions:
			e.apply(c)
		case <-e.quit:
			return
		}
	}
}

// deliver hands a worker completion to the coordinator. After shutdown the
// coordinator no longer consumes, and the completion is silently dropped.
func (e *Engine) deliver(c completion) {
	select {
	case e.completions <- c:
	case <-e.quit:
	}
}

func (e *Engine) begin(s State) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.state != StateIdle {
		return ErrBusy
	}
	e.state = s
	return nil
}

func (e *Engine) setIdle() {
	e.mu.Lock()
	e.state = StateIdle
	e.mu.Unlock()
}

func (e *Engine) apply(c completion) {
	switch c.state {
	case StateScanning:
		res := ScanResult{Err: c.err}
		if c.err == nil {
			e.mu.Lock()
			e.records = c.records
			res.Records = copyRecords(e.records)
			e.mu.Unlock()
			e.sink.ScanCompleted(res.Records)
		}
		if c.scanReply != nil {
			c.scanReply <- res
		}

	case StateChecking:
		res := CheckResult{Err: c.err}
		if c.err == nil {
			e.mu.Lock()
			res.Matched = Reconcile(e.records, c.updates)
			res.UpdateCount = UpdateCount(e.records)
			res.Records = copyRecords(e.records)
			e.mu.Unlock()
			e.sink.UpdatesFound(res.Records)
		}
		if c.checkReply != nil {
			c.checkReply <- res
		}

	case StateUpdating:
		s := c.summary
		if s.Records != nil {
			e.mu.Lock()
			e.records = s.Records
			fresh := copyRecords(e.records)
			e.mu.Unlock()
			s.Records = fresh
			e.sink.ScanCompleted(fresh)
		}
		e.mu.Lock()
		e.applied += s.Succeeded
		e.mu.Unlock()
		if c.updateReply != nil {
			c.updateReply <- *s
		}
	}

	e.setIdle()
}

// Scan starts an inventory scan cycle. The returned channel delivers the
// result once the coordinator has replaced the record set; it receives no
// value if the engine is closed before the worker finishes.
func (e *Engine) Scan() (<-chan ScanResult, error) {
	if err := e.begin(StateScanning); err != nil {
		return nil, err
	}
	reply := make(chan ScanResult, 1)
	go func() {
		res, err := e.runner.Run(winget.ListArgs()...)
		c := completion{state: StateScanning, scanReply: reply}
		if err != nil {
			c.err = err
		} else {
			c.records = winget.ParseInventory(res.Stdout)
		}
		e.deliver(c)
	}()
	return reply, nil
}

// Check starts an upgrade check cycle. On success the upgrade map is
// reconciled into the current record set by the coordinator.
func (e *Engine) Check() (<-chan CheckResult, error) {
	if err := e.begin(StateChecking); err != nil {
		return nil, err
	}
	reply := make(chan CheckResult, 1)
	go func() {
		res, err := e.runner.Run(winget.UpgradeListArgs()...)
		c := completion{state: StateChecking, checkReply: reply}
		if err != nil {
			c.err = err
		} else {
			c.updates = winget.ParseUpgrades(res.Stdout)
		}
		e.deliver(c)
	}()
	return reply, nil
}

// Update starts an update cycle for an explicit set of package ids, one
// invocation per id, sequentially.
func (e *Engine) Update(ids []string) (<-chan UpdateSummary, error) {
	if len(ids) == 0 {
		return nil, ErrNothingToUpdate
	}
	return e.update(ids, false)
}

// UpdateAll starts a bulk update cycle covering every record currently
// marked updatable, as a single external invocation.
func (e *Engine) UpdateAll() (<-chan UpdateSummary, error) {
	e.mu.Lock()
	ids := UpdatableIDs(e.records)
	e.mu.Unlock()
	if len(ids) == 0 {
		return nil, ErrNothingToUpdate
	}
	return e.update(ids, true)
}

func (e *Engine) update(ids []string, bulk bool) (<-chan UpdateSummary, error) {
	if err := e.begin(StateUpdating); err != nil {
		return nil, err
	}
	e.sink.UpdateStarted(ids, bulk)
	reply := make(chan UpdateSummary, 1)
	go e.runUpdates(ids, bulk, reply)
	return reply, nil
}

// runUpdates executes the update invocations on a worker goroutine. The
// external tool serializes package operations at the system level, so the
// per-id invocations run strictly one after another; a failure never halts
// the sequence.
func (e *Engine) runUpdates(ids []string, bulk bool, reply chan UpdateSummary) {
	summary := &UpdateSummary{Requested: ids, Bulk: bulk}

	if bulk {
		res, err := e.runner.Run(winget.UpdateAllArgs()...)
		switch {
		case err != nil:
			summary.Err = err
			summary.ErrText = err.Error()
		case res.ExitCode == 0:
			summary.Succeeded = len(ids)
		default:
			summary.ErrText = failureText(res)
		}
	} else {
		for _, id := range ids {
			res, err := e.runner.Run(winget.UpdateArgs(id)...)
			outcome := UpdateOutcome{ID: id}
			switch {
			case err != nil:
				outcome.ErrText = err.Error()
			case res.ExitCode == 0:
				outcome.Success = true
			default:
				outcome.ErrText = failureText(res)
			}
			if outcome.Success {
				summary.Succeeded++
			}
			summary.Outcomes = append(summary.Outcomes, outcome)
			e.sink.UpdateResult(id, outcome.Success, outcome.ErrText)
		}
	}

	// Ground truth after an update run comes from a fresh inventory
	// listing, never from the update invocations themselves.
	if summary.Err == nil {
		if res, err := e.runner.Run(winget.ListArgs()...); err == nil {
			summary.Records = winget.ParseInventory(res.Stdout)
		}
	}

	e.deliver(completion{state: StateUpdating, summary: summary, updateReply: reply})
}

// ScanWait runs a scan cycle and blocks for its result.
func (e *Engine) ScanWait() (ScanResult, error) {
	ch, err := e.Scan()
	if err != nil {
		return ScanResult{}, err
	}
	return <-ch, nil
}

// CheckWait runs an upgrade check cycle and blocks for its result.
func (e *Engine) CheckWait() (CheckResult, error) {
	ch, err := e.Check()
	if err != nil {
		return CheckResult{}, err
	}
	return <-ch, nil
}

// UpdateWait runs an update cycle for the given ids and blocks for its
// summary.
func (e *Engine) UpdateWait(ids []string) (UpdateSummary, error) {
	ch, err := e.Update(ids)
	if err != nil {
		return UpdateSummary{}, err
	}
	return <-ch, nil
}

// UpdateAllWait runs a bulk update cycle and blocks for its summary.
func (e *Engine) UpdateAllWait() (UpdateSummary, error) {
	ch, err := e.UpdateAll()
	if err != nil {
		return UpdateSummary{}, err
	}
	return <-ch, nil
}

// Records returns a copy of the current record set.
func (e *Engine) Records() []*winget.PackageRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyRecords(e.records)
}

// Applied returns how many updates have succeeded over the engine's
// lifetime.
func (e *Engine) Applied() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied
}

// Close emits the session summary and stops the coordinator. A worker
// still in flight keeps running, but its completion is no longer consumed
// and any caller blocked on that cycle's result channel will not receive a
// value.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	total := len(e.records)
	updatable := UpdateCount(e.records)
	applied := e.applied
	e.mu.Unlock()

	close(e.quit)
	<-e.loopDone
	e.sink.SessionSummary(total, updatable, applied)
}

func copyRecords(records []*winget.PackageRecord) []*winget.PackageRecord {
	out := make([]*winget.PackageRecord, len(records))
	for i, r := range records {
		cp := *r
		out[i] = &cp
	}
	return out
}

func failureText(res winget.Result) string {
	text := strings.TrimSpace(res.Stderr)
	if text == "" {
		text = strings.TrimSpace(res.Stdout)
	}
	if text == "" {
		text = fmt.Sprintf("exit code %d", res.ExitCode)
	}
	return text
}
