package timetree

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Entry accumulates the elapsed time of one region and owns the entries of
// its sub-regions. An Entry is either running (started and not yet stopped)
// or stopped.
//
// Entry is not safe for concurrent use; Tracker serializes access to its tree.
type Entry struct {
	clock Clock

	sum       time.Duration
	startTime time.Time
	running   bool

	children map[string]*Entry

	// names keeps the children in insertion order
	names []string
}

func newEntry(clock Clock) *Entry {
	if clock == nil {
		clock = MonotonicClock{}
	}

	return &Entry{
		clock:    clock,
		children: make(map[string]*Entry),
	}
}

// NewEntry returns a stopped entry with no accumulated time.
func NewEntry(clock Clock) *Entry {
	return newEntry(clock)
}

// Get returns the entry reached by following path from e, creating the
// missing entries on the way. New entries are stopped and empty.
// An empty path returns e itself.
func (e *Entry) Get(path ...string) *Entry {
	node := e
	for i := 0; i < len(path); i++ {
		name := path[i]
		child, ok := node.children[name]
		if !ok {
			child = newEntry(node.clock)
			node.children[name] = child
			node.names = append(node.names, name)
		}

		node = child
	}

	return node
}

// Child returns the direct child with the given name without creating it.
func (e *Entry) Child(name string) (*Entry, bool) {
	child, ok := e.children[name]
	return child, ok
}

// Names returns the child names in insertion order.
func (e *Entry) Names() []string {
	return append([]string(nil), e.names...)
}

func (e *Entry) Len() int {
	return len(e.names)
}

func (e *Entry) Running() bool {
	return e.running
}

// Sum returns the accumulated seconds of the closed intervals. Call Commit
// first to include the interval that is still running.
func (e *Entry) Sum() float64 {
	return e.sum.Seconds()
}

// Duration is Sum as a time.Duration.
func (e *Entry) Duration() time.Duration {
	return e.sum
}

func (e *Entry) Start() error {
	if e.running {
		return errors.Wrap(ErrInvalidTimerState, "timer is already running")
	}

	e.startTime = e.clock.Now()
	e.running = true
	return nil
}

func (e *Entry) Stop() error {
	if !e.running {
		return errors.Wrap(ErrInvalidTimerState, "timer is not running")
	}

	e.sum += elapsed(e.startTime, e.clock.Now())
	e.startTime = time.Time{}
	e.running = false
	return nil
}

// Commit folds the time elapsed since the last start into the sum and keeps
// the timer running from now on. It does nothing on a stopped entry.
func (e *Entry) Commit() {
	if !e.running {
		return
	}

	now := e.clock.Now()
	e.sum += elapsed(e.startTime, now)
	e.startTime = now
}

// String renders the text report with e as the root.
func (e *Entry) String() string {
	var b strings.Builder
	writeText(&b, e, "", nil, nil)
	return b.String()
}

// RenderShare renders the text report of e as a sub-tree whose parent
// accumulated parentTotal seconds out of grandTotal seconds. Child labels are
// written with the given indent.
func (e *Entry) RenderShare(indent string, parentTotal, grandTotal float64) string {
	var b strings.Builder
	writeText(&b, e, indent, &parentTotal, &grandTotal)
	return b.String()
}

// Report commits e and its descendants and returns their snapshot.
func (e *Entry) Report() Report {
	e.Commit()

	r := Report{Sum: e.Sum()}
	for _, name := range e.names {
		r.Children = append(r.Children, NamedReport{
			Name:   name,
			Report: e.children[name].Report(),
		})
	}

	return r
}

func (e *Entry) commitSum() float64 {
	e.Commit()
	return e.Sum()
}

func (e *Entry) numChildren() int {
	return len(e.names)
}

func (e *Entry) childAt(i int) (string, textNode) {
	name := e.names[i]
	return name, e.children[name]
}
