package core

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/armon/circbuf"
)

// maximum size of a captured stdout/stderr stream kept in memory
const maxStreamSize = 10 * 1024 * 1024

// Execution records a single run of an external script: timing, outcome and
// capped copies of its output streams.
type Execution struct {
	ID        string
	Date      time.Time
	Duration  time.Duration
	IsRunning bool
	Failed    bool
	Error     error

	OutputStream, ErrorStream *circbuf.Buffer
}

// NewExecution returns a new Execution with a random ID and fresh capture
// buffers.
func NewExecution() (*Execution, error) {
	bufOut, err := circbuf.NewBuffer(maxStreamSize)
	if err != nil {
		return nil, fmt.Errorf("output buffer: %w", err)
	}
	bufErr, err := circbuf.NewBuffer(maxStreamSize)
	if err != nil {
		return nil, fmt.Errorf("error buffer: %w", err)
	}
	id, err := randomID()
	if err != nil {
		return nil, err
	}
	return &Execution{
		ID:           id,
		OutputStream: bufOut,
		ErrorStream:  bufErr,
	}, nil
}

// Start marks the execution as running and records the start time.
func (e *Execution) Start() {
	e.IsRunning = true
	e.Date = time.Now()
}

// Stop halts the execution; a non-nil error marks it as failed.
func (e *Execution) Stop(err error) {
	e.IsRunning = false
	e.Duration = time.Since(e.Date)
	if err != nil {
		e.Error = err
		e.Failed = true
	}
}

// Stdout returns the captured standard output.
func (e *Execution) Stdout() string {
	if e.OutputStream == nil {
		return ""
	}
	return e.OutputStream.String()
}

// Stderr returns the captured standard error.
func (e *Execution) Stderr() string {
	if e.ErrorStream == nil {
		return ""
	}
	return e.ErrorStream.String()
}

func randomID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand read: %w", err)
	}
	return fmt.Sprintf("%x", b), nil
}
