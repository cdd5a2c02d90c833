package timetree

import (
	"reflect"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

// anonymousRegion names the region of a func whose symbol can not be resolved.
const anonymousRegion = "anonymous"

// Wrap returns a func that runs fn inside a region. The region is named
// after the first element of name, or after fn's own identifier when no name
// is given. The returned error is fn's error, unchanged.
func (t *Tracker) Wrap(fn func() error, name ...string) func() error {
	regionName := regionNameOf(fn, name)
	return func() error {
		return t.Do(regionName, fn)
	}
}

// WrapVoid is Wrap for funcs without a result. Region errors are logged.
func (t *Tracker) WrapVoid(fn func(), name ...string) func() {
	regionName := regionNameOf(fn, name)
	return func() {
		err := t.Do(regionName, func() error {
			fn()
			return nil
		})
		if err != nil {
			log.WithError(err).Errorf("timetree: region %q failed", regionName)
		}
	}
}

// WrapResult is Wrap for funcs returning a value and an error.
func WrapResult[R any](t *Tracker, fn func() (R, error), name ...string) func() (R, error) {
	regionName := regionNameOf(fn, name)
	return func() (result R, err error) {
		err = t.Do(regionName, func() error {
			var fnErr error
			result, fnErr = fn()
			return fnErr
		})
		return result, err
	}
}

// Wrap1 is Wrap for funcs taking one argument.
func Wrap1[A, R any](t *Tracker, fn func(A) (R, error), name ...string) func(A) (R, error) {
	regionName := regionNameOf(fn, name)
	return func(a A) (result R, err error) {
		err = t.Do(regionName, func() error {
			var fnErr error
			result, fnErr = fn(a)
			return fnErr
		})
		return result, err
	}
}

// Wrap2 is Wrap for funcs taking two arguments.
func Wrap2[A, B, R any](t *Tracker, fn func(A, B) (R, error), name ...string) func(A, B) (R, error) {
	regionName := regionNameOf(fn, name)
	return func(a A, b B) (result R, err error) {
		err = t.Do(regionName, func() error {
			var fnErr error
			result, fnErr = fn(a, b)
			return fnErr
		})
		return result, err
	}
}

func regionNameOf(fn interface{}, names []string) string {
	if len(names) > 0 && len(names[0]) > 0 {
		return names[0]
	}

	return FuncName(fn)
}

// FuncName returns the identifier of fn without its package path, e.g.
// "loadUsers" for github.com/acme/app.loadUsers or "(*Store).Load" for a
// method value. A closure is named after its enclosing func with a ".funcN"
// suffix, e.g. "main.func1", so pass an explicit name when wrapping a
// function literal.
func FuncName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return anonymousRegion
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return anonymousRegion
	}

	return trimPackagePath(f.Name())
}

// trimPackagePath strips the import path from a symbol name. The last path
// element may itself contain a dot, either escaped as %2e or as a gopkg.in
// style major version suffix like yaml.v3.
func trimPackagePath(symbol string) string {
	lastSlash := strings.LastIndexByte(symbol, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	funcName := symbol[lastSlash:]
	if dot := strings.IndexByte(funcName, '.'); dot >= 0 {
		funcName = funcName[dot+1:]
	}

	if dot := strings.IndexByte(funcName, '.'); dot >= 0 && isMajorVersion(funcName[:dot]) {
		funcName = funcName[dot+1:]
	}

	return strings.TrimSuffix(funcName, "-fm")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
