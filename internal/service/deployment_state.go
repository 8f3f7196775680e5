package service

import (
	"fmt"
	"sync"
	"time"
)

const subscriberBuffer = 128

// deploymentState guards one in-flight or retained deployment record
type deploymentState struct {
	mu          sync.Mutex
	rec         DeploymentRecord
	clock       func() time.Time
	onLog       func(id, msg string)
	subscribers map[int]chan LogEntry
	nextSub     int
}

func newDeploymentState(rec DeploymentRecord, clock func() time.Time, onLog func(id, msg string)) *deploymentState {
	return &deploymentState{
		rec:         rec,
		clock:       clock,
		onLog:       onLog,
		subscribers: make(map[int]chan LogEntry),
	}
}

func (d *deploymentState) id() string {
	return d.rec.ID
}

// snapshot returns a deep copy safe to hand out to readers
func (d *deploymentState) snapshot() DeploymentRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copyLocked()
}

func (d *deploymentState) copyLocked() DeploymentRecord {
	out := d.rec
	out.Logs = append([]LogEntry(nil), d.rec.Logs...)
	out.Metrics = DeploymentMetrics{
		BuildTime:  copyInt64(d.rec.Metrics.BuildTime),
		DeployTime: copyInt64(d.rec.Metrics.DeployTime),
		BundleSize: copyInt64(d.rec.Metrics.BundleSize),
	}
	if d.rec.FinishedAt != nil {
		finished := *d.rec.FinishedAt
		out.FinishedAt = &finished
	}
	return out
}

func (d *deploymentState) status() DeploymentStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rec.Status
}

// logf appends a timestamped line and fans it out to subscribers.
// Finished records are frozen, so late lines are dropped.
func (d *deploymentState) logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	if d.rec.Status.IsTerminal() {
		d.mu.Unlock()
		return
	}
	entry := LogEntry{Timestamp: d.clock(), Message: msg}
	d.rec.Logs = append(d.rec.Logs, entry)
	d.publishLocked(entry)
	d.mu.Unlock()

	if d.onLog != nil {
		d.onLog(d.rec.ID, msg)
	}
}

// stream forwards raw command output to subscribers without storing it
func (d *deploymentState) stream(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rec.Status.IsTerminal() {
		return
	}
	d.publishLocked(LogEntry{Timestamp: d.clock(), Message: line})
}

func (d *deploymentState) publishLocked(entry LogEntry) {
	for _, ch := range d.subscribers {
		select {
		case ch <- entry:
		default:
			// slow subscriber, drop the line
		}
	}
}

// transition moves the record to the given status unless it is already terminal.
// A message is appended under the same lock so the status and its log line stay in order.
func (d *deploymentState) transition(to DeploymentStatus, format string, args ...interface{}) bool {
	d.mu.Lock()
	if d.rec.Status.IsTerminal() {
		d.mu.Unlock()
		return false
	}
	d.rec.Status = to
	if to.IsTerminal() {
		finished := d.clock()
		d.rec.FinishedAt = &finished
	}

	var msg string
	if format != "" {
		msg = fmt.Sprintf(format, args...)
		entry := LogEntry{Timestamp: d.clock(), Message: msg}
		d.rec.Logs = append(d.rec.Logs, entry)
		d.publishLocked(entry)
	}
	if to.IsTerminal() {
		d.closeSubscribersLocked()
	}
	d.mu.Unlock()

	if msg != "" && d.onLog != nil {
		d.onLog(d.rec.ID, msg)
	}
	return true
}

// cancel marks a pending or building record as cancelled
func (d *deploymentState) cancel() bool {
	d.mu.Lock()
	status := d.rec.Status
	d.mu.Unlock()
	if status != StatusPending && status != StatusBuilding {
		return false
	}
	return d.transition(StatusCancelled, "Deployment cancelled by user")
}

func (d *deploymentState) setBuildTime(elapsed time.Duration) {
	ms := elapsed.Milliseconds()
	d.mu.Lock()
	d.rec.Metrics.BuildTime = &ms
	d.mu.Unlock()
}

func (d *deploymentState) setDeployTime(elapsed time.Duration) {
	ms := elapsed.Milliseconds()
	d.mu.Lock()
	d.rec.Metrics.DeployTime = &ms
	d.mu.Unlock()
}

func (d *deploymentState) setBundleSize(size int64) {
	d.mu.Lock()
	d.rec.Metrics.BundleSize = &size
	d.mu.Unlock()
}

// subscribe registers a log listener. The returned channel is closed once the
// record reaches a terminal status or the subscription is cancelled.
func (d *deploymentState) subscribe() ([]LogEntry, <-chan LogEntry, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	backlog := append([]LogEntry(nil), d.rec.Logs...)
	ch := make(chan LogEntry, subscriberBuffer)
	if d.rec.Status.IsTerminal() {
		close(ch)
		return backlog, ch, func() {}
	}

	key := d.nextSub
	d.nextSub++
	d.subscribers[key] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if sub, ok := d.subscribers[key]; ok {
				delete(d.subscribers, key)
				close(sub)
			}
		})
	}
	return backlog, ch, unsubscribe
}

func (d *deploymentState) closeSubscribersLocked() {
	for key, ch := range d.subscribers {
		close(ch)
		delete(d.subscribers, key)
	}
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
