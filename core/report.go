package core

import (
	"sync"
	"time"
)

// ReportEventKind enumerates the events a report records per test identity.
type ReportEventKind string

const (
	EventStart   ReportEventKind = "start"
	EventSuccess ReportEventKind = "success"
	EventFailure ReportEventKind = "failure"
	EventStop    ReportEventKind = "stop"
)

// ReportEvent is one entry in the append-only report sequence.
type ReportEvent struct {
	Kind    ReportEventKind
	Test    string
	Dynamic bool
	Detail  string
	Time    time.Time
}

// SuiteReport is the in-memory Report implementation used by the runner and
// the tests. Entries are only ever appended.
type SuiteReport struct {
	mu     sync.Mutex
	events []ReportEvent
	// dynamic tracks tests started with dynamic=true so their follow-up
	// events are flagged too
	dynamic map[string]bool
}

var _ Report = (*SuiteReport)(nil)

func NewSuiteReport() *SuiteReport {
	return &SuiteReport{dynamic: make(map[string]bool)}
}

func (r *SuiteReport) StartTest(tc TestCase, dynamic bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic[tc.TestName()] = dynamic
	r.append(EventStart, tc, "")
}

func (r *SuiteReport) AddSuccess(tc TestCase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.append(EventSuccess, tc, "")
}

func (r *SuiteReport) AddFailure(tc TestCase, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.append(EventFailure, tc, detail)
}

func (r *SuiteReport) StopTest(tc TestCase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.append(EventStop, tc, "")
}

func (r *SuiteReport) append(kind ReportEventKind, tc TestCase, detail string) {
	r.events = append(r.events, ReportEvent{
		Kind:    kind,
		Test:    tc.TestName(),
		Dynamic: r.dynamic[tc.TestName()],
		Detail:  detail,
		Time:    time.Now(),
	})
}

// Events returns a copy of the recorded event sequence.
func (r *SuiteReport) Events() []ReportEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ReportEvent(nil), r.events...)
}

// Count returns how many events of the given kind were recorded, dynamic and
// ordinary alike.
func (r *SuiteReport) Count(kind ReportEventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Failures returns the failure events recorded so far.
func (r *SuiteReport) Failures() []ReportEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ReportEvent
	for _, ev := range r.events {
		if ev.Kind == EventFailure {
			out = append(out, ev)
		}
	}
	return out
}

// OK reports whether no failures were recorded.
func (r *SuiteReport) OK() bool {
	return len(r.Failures()) == 0
}
