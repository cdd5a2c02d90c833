package timetree

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	tracker, clock := newTestTracker()

	require.NoError(t, tracker.Do("a", func() error {
		clock.Advance(2 * time.Second)
		return nil
	}))
	clock.Advance(2 * time.Second)

	c := NewCollector(tracker, "timetree")
	assert.Equal(t, 4, testutil.CollectAndCount(c))

	err := testutil.CollectAndCompare(c, strings.NewReader(`
# HELP timetree_region_seconds Wall-clock seconds accumulated by the region
# TYPE timetree_region_seconds gauge
timetree_region_seconds{path="/"} 4
timetree_region_seconds{path="/a"} 2
`), "timetree_region_seconds")
	assert.NoError(t, err)

	err = testutil.CollectAndCompare(c, strings.NewReader(`
# HELP timetree_region_parent_ratio Share of the parent region's time spent in the region
# TYPE timetree_region_parent_ratio gauge
timetree_region_parent_ratio{path="/"} 1
timetree_region_parent_ratio{path="/a"} 0.5
`), "timetree_region_parent_ratio")
	assert.NoError(t, err)
}
