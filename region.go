package timetree

import "github.com/pkg/errors"

// Region is the handle of an open region returned by Tracker.Enter.
//
//	region, err := tracker.Enter("load")
//	if err != nil {
//		return err
//	}
//	defer region.Exit()
type Region struct {
	tracker *Tracker
	name    string
	id      uint64
	depth   int
	exited  bool
}

func (r *Region) Name() string {
	return r.name
}

// Exit closes the region. It fails with ErrNestingViolation when the region
// was already exited, when a region entered after it is still open or when it
// was closed through Tracker.Exit.
func (r *Region) Exit() error {
	t := r.tracker

	t.mu.Lock()
	defer t.mu.Unlock()

	if r.exited {
		return errors.Wrapf(ErrNestingViolation, "region %q is already exited", r.name)
	}

	if len(t.path) != r.depth || t.ids[r.depth-1] != r.id {
		return errors.Wrapf(ErrNestingViolation, "region %q is not the innermost open region, open regions: %s",
			r.name, regionPath(t.path))
	}

	r.exited = true
	return t.exit()
}
