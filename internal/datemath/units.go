package datemath

import "strings"

// Unit is one of the calendar granularities an expression can round to or
// shift by.
type Unit int

const (
	Years Unit = iota
	Months
	Days
	Hours
	Minutes
	Seconds
	Millis
)

func (u Unit) String() string {
	switch u {
	case Years:
		return "YEARS"
	case Months:
		return "MONTHS"
	case Days:
		return "DAYS"
	case Hours:
		return "HOURS"
	case Minutes:
		return "MINUTES"
	case Seconds:
		return "SECONDS"
	case Millis:
		return "MILLIS"
	default:
		return "UNKNOWN"
	}
}

// calendarUnits maps uppercase labels to canonical units. Several labels
// resolve to the same unit (DATE==DAYS, MILLI==MILLIS). WEEK is deliberately
// absent: rounding down to the nearest week around a month or year boundary
// has no single obvious meaning.
var calendarUnits = map[string]Unit{
	"YEAR":         Years,
	"YEARS":        Years,
	"MONTH":        Months,
	"MONTHS":       Months,
	"DAY":          Days,
	"DAYS":         Days,
	"DATE":         Days,
	"HOUR":         Hours,
	"HOURS":        Hours,
	"MINUTE":       Minutes,
	"MINUTES":      Minutes,
	"SECOND":       Seconds,
	"SECONDS":      Seconds,
	"MILLI":        Millis,
	"MILLIS":       Millis,
	"MILLISECOND":  Millis,
	"MILLISECONDS": Millis,
}

// LookupUnit resolves a unit label case-insensitively.
func LookupUnit(name string) (Unit, bool) {
	u, ok := calendarUnits[strings.ToUpper(name)]
	return u, ok
}

// Units returns a copy of the label table, keyed by alias.
func Units() map[string]Unit {
	out := make(map[string]Unit, len(calendarUnits))
	for k, v := range calendarUnits {
		out[k] = v
	}
	return out
}
