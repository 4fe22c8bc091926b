package thin

import "sync/atomic"

// Dropper is implemented by values that need explicit teardown when the
// handle owning them is dropped.
type Dropper interface {
	Drop()
}

// Closer is the io.Closer shape. Values without Drop are closed instead.
type Closer interface {
	Close() error
}

var dropErrorHandler atomic.Pointer[func(error)]

// SetDropErrorHandler installs fn to receive errors returned by Close while
// a handle is dropped and returns the previous handler. A nil fn discards
// them, which is the default.
func SetDropErrorHandler(fn func(error)) func(error) {
	var prev *func(error)
	if fn == nil {
		prev = dropErrorHandler.Swap(nil)
	} else {
		prev = dropErrorHandler.Swap(&fn)
	}
	if prev == nil {
		return nil
	}
	return *prev
}

func closeValue(c Closer) {
	if err := c.Close(); err != nil {
		if fn := dropErrorHandler.Load(); fn != nil {
			(*fn)(err)
		}
	}
}

// DropValue tears down v exactly once. Drop takes precedence over Close,
// and both the value and its address are checked so pointer-receiver
// methods are found.
func DropValue[T any](v *T) {
	switch d := any(*v).(type) {
	case Dropper:
		d.Drop()
		return
	case Closer:
		closeValue(d)
		return
	}
	switch d := any(v).(type) {
	case Dropper:
		d.Drop()
	case Closer:
		closeValue(d)
	}
}
