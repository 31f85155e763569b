package datemath

import (
	"testing"
	"time"
)

func TestAddMonthsClampsToEndOfMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		// Leap year: Jan 31 + 1 month clamps to Feb 29.
		{time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		// Non-leap year clamps to Feb 28.
		{time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		// 31st into a 30-day month.
		{time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC), 1,
			time.Date(2024, time.April, 30, 12, 0, 0, 0, time.UTC)},
		// Negative shift clamps too.
		{time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), -1,
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		// No clamp needed when the day fits.
		{time.Date(2024, time.January, 15, 6, 30, 0, 0, time.UTC), 1,
			time.Date(2024, time.February, 15, 6, 30, 0, 0, time.UTC)},
		// Across a year boundary.
		{time.Date(2023, time.November, 30, 0, 0, 0, 0, time.UTC), 3,
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), -13,
			time.Date(2022, time.December, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := addUnit(tc.in, tc.n, Months); !got.Equal(tc.want) {
			t.Fatalf("%v %+dMONTHS = %v, want %v", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestAddYears(t *testing.T) {
	t.Parallel()

	// Feb 29 + 1 year clamps to Feb 28.
	in := time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)
	want := time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC)
	if got := addUnit(in, 1, Years); !got.Equal(want) {
		t.Fatalf("+1YEAR from %v = %v, want %v", in, got, want)
	}

	// Feb 29 + 4 years stays on Feb 29.
	want = time.Date(2028, time.February, 29, 10, 0, 0, 0, time.UTC)
	if got := addUnit(in, 4, Years); !got.Equal(want) {
		t.Fatalf("+4YEARS from %v = %v, want %v", in, got, want)
	}
}

func TestAddDays(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, time.February, 28, 8, 0, 0, 0, time.UTC)
	if got := addUnit(in, 1, Days); got.Day() != 29 {
		t.Fatalf("+1DAY from %v = %v, want Feb 29", in, got)
	}
	if got := addUnit(in, -28, Days); !got.Equal(time.Date(2024, time.January, 31, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("-28DAYS from %v = %v", in, got)
	}
}

func TestAddClockUnits(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		n    int
		unit Unit
		want time.Time
	}{
		{25, Hours, time.Date(2024, time.June, 2, 1, 0, 0, 0, time.UTC)},
		{-90, Minutes, time.Date(2024, time.May, 31, 22, 30, 0, 0, time.UTC)},
		{61, Seconds, time.Date(2024, time.June, 1, 0, 1, 1, 0, time.UTC)},
		{1500, Millis, time.Date(2024, time.June, 1, 0, 0, 1, 500000000, time.UTC)},
		{0, Hours, in},
	}
	for _, tc := range cases {
		if got := addUnit(in, tc.n, tc.unit); !got.Equal(tc.want) {
			t.Fatalf("%+d %v from %v = %v, want %v", tc.n, tc.unit, in, got, tc.want)
		}
	}
}

func TestAddDayAcrossDSTKeepsLocalClock(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Calendar day addition across spring-forward keeps the local wall
	// clock; the absolute shift is only 23 hours.
	in := time.Date(2024, time.March, 9, 12, 0, 0, 0, loc)
	got := addUnit(in, 1, Days)
	want := time.Date(2024, time.March, 10, 12, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("+1DAY across DST = %v, want %v", got, want)
	}
	if d := got.Sub(in); d != 23*time.Hour {
		t.Fatalf("expected 23h absolute shift, got %v", d)
	}
}
