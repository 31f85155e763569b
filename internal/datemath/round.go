package datemath

import "time"

// round truncates t down to the start of unit, in t's own location. Year,
// month and day starts are calendar boundaries in that location; the clock
// units zero out the smaller local fields, so zones with non-whole-hour
// offsets still round on local boundaries.
func round(t time.Time, u Unit) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch u {
	case Years:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case Months:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Days:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Hours:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case Minutes:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	case Seconds:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	default: // Millis
		ns := t.Nanosecond() / int(time.Millisecond) * int(time.Millisecond)
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), ns, loc)
	}
}
