package timetree

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// regionPath formats a path lazily for log lines.
type regionPath []string

func (p regionPath) String() string {
	return strings.Join(p, "/")
}

// Tracker times strictly nested regions of one flow of control. It owns a
// running root entry and the path of the regions that are currently open.
//
// The mutex only makes it safe to take a report from another goroutine while
// the flow is timing. Regions entered from several goroutines on the same
// Tracker interleave on one path and produce meaningless results.
type Tracker struct {
	mu sync.Mutex

	clock Clock
	root  *Entry
	path  []string

	// ids holds the entry sequence number of each open region, parallel to path
	ids []uint64
	seq uint64
}

// New returns a Tracker whose root is already running.
func New() *Tracker {
	return NewWithClock(MonotonicClock{})
}

// NewWithClock is New with a custom time source.
func NewWithClock(clock Clock) *Tracker {
	if clock == nil {
		clock = MonotonicClock{}
	}

	t := &Tracker{clock: clock}
	t.reset()
	return t
}

// Clear drops every accumulated duration. The regions that are open stay
// open: a fresh running entry is created for each of them and for the root.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reset()
	log.Debugf("timetree: cleared, %d region(s) still open: %s", len(t.path), regionPath(t.path))
}

func (t *Tracker) reset() {
	t.root = newEntry(t.clock)
	for end := 0; end <= len(t.path); end++ {
		if err := t.root.Get(t.path[:end]...).Start(); err != nil {
			log.WithError(err).Errorf("timetree: can not reopen region %s", regionPath(t.path[:end]))
		}
	}
}

// Enter opens the region name below the innermost open region and starts its
// timer. The returned Region must be exited before its parent region.
func (t *Tracker) Enter(name string) (*Region, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.path = append(t.path, name)
	if err := t.root.Get(t.path...).Start(); err != nil {
		err = errors.Wrapf(err, "can not enter region %s", regionPath(t.path))
		t.path = t.path[:len(t.path)-1]
		return nil, err
	}

	t.seq++
	t.ids = append(t.ids, t.seq)

	log.Debugf("timetree: enter %s", regionPath(t.path))

	return &Region{
		tracker: t,
		name:    name,
		id:      t.seq,
		depth:   len(t.path),
	}, nil
}

// Exit stops the innermost open region and closes it.
func (t *Tracker) Exit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.exit()
}

func (t *Tracker) exit() error {
	if len(t.path) == 0 {
		return errors.Wrap(ErrNestingViolation, "exit without an open region")
	}

	log.Debugf("timetree: exit %s", regionPath(t.path))

	err := t.root.Get(t.path...).Stop()
	if err != nil {
		err = errors.Wrapf(err, "can not exit region %s", regionPath(t.path))
	}

	// the caller considers the region closed either way
	t.path = t.path[:len(t.path)-1]
	t.ids = t.ids[:len(t.ids)-1]
	return err
}

// Do runs fn inside the region name. The region is exited on every path out
// of fn, including a panic, and the error of fn is returned as is. An error
// from exiting the region is only returned when fn succeeded.
func (t *Tracker) Do(name string, fn func() error) (err error) {
	region, err := t.Enter(name)
	if err != nil {
		return err
	}

	defer func() {
		if exitErr := region.Exit(); exitErr != nil {
			if err == nil {
				err = exitErr
				return
			}

			log.WithError(exitErr).Errorf("timetree: failed to exit region %q", name)
		}
	}()

	return fn()
}

// Path returns a copy of the names of the open regions, outermost first.
func (t *Tracker) Path() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.path...)
}

// String renders the text report of the whole tree. Running regions are
// committed, not stopped.
func (t *Tracker) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.root.String()
}

// Report returns the committed snapshot of the whole tree.
func (t *Tracker) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.root.Report()
}

// JSON encodes Report as JSON.
func (t *Tracker) JSON() ([]byte, error) {
	return json.Marshal(t.Report())
}

// YAML encodes Report as YAML.
func (t *Tracker) YAML() ([]byte, error) {
	return yaml.Marshal(t.Report())
}
