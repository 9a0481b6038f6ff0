// Package winhook tags every top-level window of the current process with an
// AppUserModelID in its shell property store, so the Windows taskbar groups,
// pins and badges the app's windows under the identity of its installed
// shortcut. The tag is applied as each window is created and cleared as it is
// destroyed.
//
// Call Install once at startup, after the GUI toolkit has initialised and
// before any windows are shown. On other platforms Install is a no-op and
// window identity is handled by the installed .desktop entry instead.
package winhook

import (
	"errors"
	"sync/atomic"
	"unicode/utf16"
)

const (
	// maxAppIDUnits bounds the id to the traditional 1024 wide-char buffer,
	// NUL included. Longer input is truncated.
	maxAppIDUnits = 1023

	// placeholder seen by events arriving before Install, which shouldn't
	// happen since subscriptions are only registered by Install itself
	defaultAppID = "<no-appid-set>"

	eventObjectCreate  = 0x8000
	eventObjectDestroy = 0x8001

	// events carry the id of the sub-object they concern, zero means the
	// window object itself
	objidWindow = 0
)

// ErrEmptyAppID is returned by Install for an empty identifier
var ErrEmptyAppID = errors.New("winhook: appid must not be empty")

// store is one window's property store reduced to the single key we manage
type store interface {
	SetAppID(id string) error
	ClearAppID() error
	Release()
}

// tagger applies the process-wide appid to windows as their creation and
// destruction events arrive. The appid is written once at install time and
// only read afterwards; events may arrive on any thread of the process, so
// the single-writer/many-reader access goes through an atomic.
type tagger struct {
	appID  atomic.Value
	lookup func(window uintptr) (store, error)
}

func newTagger(lookup func(window uintptr) (store, error)) *tagger {
	t := &tagger{lookup: lookup}
	t.appID.Store(defaultAppID)
	return t
}

func (t *tagger) setAppID(id string) error {
	if id == "" {
		return ErrEmptyAppID
	}
	t.appID.Store(truncate(id, maxAppIDUnits))
	return nil
}

// handle processes a single window event. The error return is best effort
// only: the system callback path has nowhere safe to report failures, so the
// caller discards it and the event is skipped. A failure for one window never
// affects others.
func (t *tagger) handle(event uint32, window uintptr, object int32) error {
	if object != objidWindow {
		// sub-objects (controls, menus) raise their own events, skip them
		return nil
	}

	st, err := t.lookup(window)
	if err != nil {
		return err
	}
	defer st.Release()

	switch event {
	case eventObjectCreate:
		return st.SetAppID(t.appID.Load().(string))
	case eventObjectDestroy:
		return st.ClearAppID()
	}
	return nil
}

// truncate bounds s to max UTF-16 code units without splitting a surrogate pair
func truncate(s string, max int) string {
	units := utf16.Encode([]rune(s))
	if len(units) <= max {
		return s
	}
	units = units[:max]
	if last := units[max-1]; last >= 0xD800 && last <= 0xDBFF {
		units = units[:max-1]
	}
	return string(utf16.Decode(units))
}
