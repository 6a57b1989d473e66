package ordering

import "time"

// Clock supplies the wall-clock time and deferred callbacks.
// Sessions never read time.Now directly so pricing and ids stay testable.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type systemClock struct {
	loc *time.Location
}

// SystemClock reports the current time in loc (the storefront's local zone)
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time { return time.Now().In(c.loc) }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
