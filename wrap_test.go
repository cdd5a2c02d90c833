package timetree

import (
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleWork() error {
	return nil
}

type worker struct{}

func (w *worker) run() error {
	return nil
}

func TestFuncName(t *testing.T) {
	tests := []struct {
		name string
		fn   interface{}
		want string
	}{
		{
			name: "package func",
			fn:   sampleWork,
			want: "sampleWork",
		},
		{
			name: "method value",
			fn:   (&worker{}).run,
			want: "(*worker).run",
		},
		{
			name: "dotted package path",
			fn:   yaml.Marshal,
			want: "Marshal",
		},
		{
			name: "closure",
			fn:   func() error { return nil },
			want: "TestFuncName.func1",
		},
		{
			name: "nil",
			fn:   nil,
			want: anonymousRegion,
		},
		{
			name: "not a func",
			fn:   42,
			want: anonymousRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FuncName(tt.fn))
		})
	}
}

func Test_trimPackagePath(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{symbol: "main.loadUsers", want: "loadUsers"},
		{symbol: "github.com/acme/app.loadUsers", want: "loadUsers"},
		{symbol: "github.com/acme/app.(*Store).Load-fm", want: "(*Store).Load"},
		{symbol: "github.com/acme/app.run.func2", want: "run.func2"},
		{symbol: "gopkg.in/yaml.v3.Marshal", want: "Marshal"},
		{symbol: "gopkg.in/yaml%2ev3.Marshal", want: "Marshal"},
		{symbol: "gopkg.in/yaml.v3.(*Node).Decode", want: "(*Node).Decode"},
		{symbol: "github.com/acme/app.v2", want: "v2"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, trimPackagePath(tt.symbol))
		})
	}
}

func TestTracker_WrapNames(t *testing.T) {
	tracker, _ := newTestTracker()

	require.NoError(t, tracker.Wrap(sampleWork)())
	require.NoError(t, tracker.Wrap(sampleWork, "custom_name")())
	require.NoError(t, tracker.Wrap(sampleWork, "")())

	assert.Equal(t, []string{"sampleWork", "custom_name"}, childNames(tracker.Report()))
}

func TestTracker_WrapNests(t *testing.T) {
	tracker, clock := newTestTracker()

	inner := tracker.Wrap(func() error {
		clock.Advance(time.Millisecond)
		return nil
	}, "inner")
	outer := tracker.Wrap(func() error {
		clock.Advance(time.Millisecond)
		return inner()
	}, "outer")

	require.NoError(t, outer())
	require.NoError(t, outer())

	report := tracker.Report()
	o, ok := report.Lookup("outer")
	require.True(t, ok)
	assert.Equal(t, 0.004, o.Sum)

	i, ok := report.Lookup("outer", "inner")
	require.True(t, ok)
	assert.Equal(t, 0.002, i.Sum)

	_, ok = report.Lookup("inner")
	assert.False(t, ok)
}

func TestWrapResult(t *testing.T) {
	tracker, clock := newTestTracker()

	fn := WrapResult(tracker, func() (string, error) {
		clock.Advance(time.Millisecond)
		return "ok", nil
	}, "result")

	out, err := fn()
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	r, ok := tracker.Report().Lookup("result")
	require.True(t, ok)
	assert.Equal(t, 0.001, r.Sum)
}

func TestWrap1(t *testing.T) {
	tracker, _ := newTestTracker()
	errNegative := errors.New("negative")

	itoa := Wrap1(tracker, func(n int) (string, error) {
		if n < 0 {
			return "", errNegative
		}
		return strconv.Itoa(n), nil
	}, "itoa")

	out, err := itoa(42)
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	_, err = itoa(-1)
	assert.Same(t, errNegative, err)
	assert.Empty(t, tracker.Path())
}

func TestWrap2(t *testing.T) {
	tracker, _ := newTestTracker()

	add := Wrap2(tracker, func(a, b int) (int, error) {
		return a + b, nil
	}, "add")

	out, err := add(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, out)
	assert.Equal(t, []string{"add"}, childNames(tracker.Report()))
}
