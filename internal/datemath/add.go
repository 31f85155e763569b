package datemath

import "time"

// addUnit shifts t by n units, n may be negative or zero. Years, months and
// days are calendar shifts; the clock units are exact duration offsets.
func addUnit(t time.Time, n int, u Unit) time.Time {
	switch u {
	case Years:
		return addMonths(t, 12*n)
	case Months:
		return addMonths(t, n)
	case Days:
		return t.AddDate(0, 0, n)
	case Hours:
		return t.Add(time.Duration(n) * time.Hour)
	case Minutes:
		return t.Add(time.Duration(n) * time.Minute)
	case Seconds:
		return t.Add(time.Duration(n) * time.Second)
	default: // Millis
		return t.Add(time.Duration(n) * time.Millisecond)
	}
}

// addMonths shifts t by n calendar months with the day-of-month clamped to
// the last valid day of the target month: Jan 31 +1 month is Feb 29 in a
// leap year, Feb 28 otherwise. time.AddDate would normalize that overflow
// into early March instead.
func addMonths(t time.Time, n int) time.Time {
	y, mo, d := t.Date()
	m := int(mo) - 1 + n
	y += m / 12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	month := time.Month(m + 1)
	if last := daysIn(y, month); d > last {
		d = last
	}
	return time.Date(y, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
