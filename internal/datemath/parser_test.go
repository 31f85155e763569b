package datemath

import (
	"errors"
	"testing"
	"time"
)

func fixedParser(t time.Time) *Parser {
	p := New(nil)
	p.SetNow(t)
	return p
}

func TestEvalEmptyExpressionIsNoOp(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	got, err := fixedParser(anchor).Eval("")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(anchor) {
		t.Fatalf("expected anchor unchanged, got %v", got)
	}
}

func TestEvalRoundYear(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	got, err := fixedParser(anchor).Eval("/YEAR")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("/YEAR = %v, want %v", got, want)
	}
}

func TestEvalChainedCommands(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	got, err := fixedParser(anchor).Eval("/DAY+6MONTHS+3DAYS")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.September, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("/DAY+6MONTHS+3DAYS = %v, want %v", got, want)
	}
}

func TestEvalMonthOverflowClamps(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	got, err := fixedParser(anchor).Eval("+1MONTH")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("+1MONTH from Jan 31 = %v, want %v", got, want)
	}
}

func TestEvalSubtraction(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	got, err := fixedParser(anchor).Eval("-3MONTHS")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2023, time.December, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("-3MONTHS = %v, want %v", got, want)
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		expr  string
		kind  ParseErrorKind
		token string
		pos   int
	}{
		{"+1FOO", ErrUnitNotRecognized, "FOO", 2},
		{"/FOO", ErrUnitNotRecognized, "FOO", 1},
		{"+", ErrMissingValueOrUnit, "+", 1},
		{"+1", ErrMissingValueOrUnit, "+", 1},
		{"/", ErrMissingUnit, "/", 1},
		{"++1DAY", ErrNotANumber, "+", 1},
		{"+x1DAY", ErrNotANumber, "x", 1},
		{"+xDAY", ErrMissingValueOrUnit, "+", 1},
		{"*1DAY", ErrUnrecognizedCommand, "*", 0},
		{"bogus", ErrMultiCharacterCommand, "bogus", 0},
		{"/DAY12MONTH", ErrMultiCharacterCommand, "12", 2},
		{"/DAY+1DAYbogus", ErrUnitNotRecognized, "DAYbogus", 4},
	}
	for _, tc := range cases {
		_, err := fixedParser(anchor).Eval(tc.expr)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Eval(%q): expected *ParseError, got %v", tc.expr, err)
		}
		if perr.Kind != tc.kind {
			t.Fatalf("Eval(%q): kind %q, want %q", tc.expr, perr.Kind, tc.kind)
		}
		if perr.Token != tc.token {
			t.Fatalf("Eval(%q): token %q, want %q", tc.expr, perr.Token, tc.token)
		}
		if perr.Pos != tc.pos {
			t.Fatalf("Eval(%q): pos %d, want %d", tc.expr, perr.Pos, tc.pos)
		}
	}
}

func TestNowIsPinnedOnFirstRead(t *testing.T) {
	t.Parallel()

	p := New(nil)
	first := p.Now()
	time.Sleep(2 * time.Millisecond)
	second := p.Now()
	if !first.Equal(second) {
		t.Fatalf("now drifted between reads: %v != %v", first, second)
	}

	pinned := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	p.SetNow(pinned)
	if !p.Now().Equal(pinned) {
		t.Fatalf("SetNow not honored: %v", p.Now())
	}
}

func TestEvalInZoneRoundsOnLocalDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+0530", 5*3600+1800)
	p := New(loc)
	// 22:30 UTC is 04:00 the next local day.
	p.SetNow(time.Date(2024, time.January, 1, 22, 30, 0, 0, time.UTC))

	got, err := p.Eval("/DAY")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.January, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("/DAY in %v = %v, want %v", loc, got, want)
	}
}

func TestParseNowForm(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	got, err := Parse(&anchor, "NOW")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(anchor) {
		t.Fatalf("NOW = %v, want %v", got, anchor)
	}

	got, err = Parse(&anchor, "NOW+1DAY")
	if err != nil {
		t.Fatal(err)
	}
	if want := anchor.AddDate(0, 0, 1); !got.Equal(want) {
		t.Fatalf("NOW+1DAY = %v, want %v", got, want)
	}
}

func TestParseAbsoluteForm(t *testing.T) {
	t.Parallel()

	got, err := Parse(nil, "2024-01-01T00:00:00Z+1DAY")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("absolute+1DAY = %v, want %v", got, want)
	}

	// No math suffix returns the instant itself.
	got, err = Parse(nil, "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("bare instant = %v", got)
	}
}

func TestParseLenientInstant(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Time{
		"2024-01-01T00:00Z":          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		"2024-01-01T00:00:00.500Z":   time.Date(2024, time.January, 1, 0, 0, 0, 500000000, time.UTC),
		"2024-06-30T23:59:59Z/MONTH": time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	for input, want := range cases {
		got, err := Parse(nil, input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Parse(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseBadRequest(t *testing.T) {
	t.Parallel()

	cases := []string{
		"garbage",
		"2024-01-01T00:00:00",
		// The 'Z' terminator is a literal uppercase byte.
		"2024-01-01t00:00:00z",
		"2024-13-99T00:00:00Z",
		"NOW+1FOO",
		"2024-01-01T00:00:00Z+1FOO",
	}
	for _, input := range cases {
		_, err := Parse(nil, input)
		var bad *BadRequestError
		if !errors.As(err, &bad) {
			t.Fatalf("Parse(%q): expected *BadRequestError, got %v", input, err)
		}
		if bad.Input != input {
			t.Fatalf("Parse(%q): error carries input %q", input, bad.Input)
		}
	}

	// A math failure keeps the underlying ParseError as the cause.
	_, err := Parse(nil, "NOW+1FOO")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected wrapped *ParseError, got %v", err)
	}
	if perr.Kind != ErrUnitNotRecognized || perr.Token != "FOO" {
		t.Fatalf("unexpected cause: %#v", perr)
	}
}

func TestParseUsesFreshInstancePerCall(t *testing.T) {
	t.Parallel()

	// A wall-clock call in between must not leak its pinned now into a
	// later call with an explicit anchor.
	anchor := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	first, err := Parse(&anchor, "NOW/DAY")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(nil, "NOW/DAY"); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(&anchor, "NOW/DAY")
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(again) {
		t.Fatalf("anchored rounding diverged: %v != %v", first, again)
	}
}
