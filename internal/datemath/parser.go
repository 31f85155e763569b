// Package datemath parses and evaluates "date math" expressions such as
// NOW+1DAY/HOUR or 2024-01-01T00:00:00Z-3MONTHS against a fixed anchor time.
//
// The syntax supports addition, subtraction and rounding at various
// granularities, chained left to right. '+' and '-' take an integer count
// and a unit, '/' rounds down to the start of a unit. Expressions must not
// contain whitespace; the empty expression is a no-op.
//
//	/HOUR               start of the current hour
//	+2YEARS             exactly two years from now
//	-1DAY               exactly one day ago
//	/DAY+6MONTHS+3DAYS  six months and three days after the start of today
//
// Unit names are case-insensitive and most have plural and shorthand
// aliases (DAY, DAYS and DATE are the same unit). Weeks are not supported.
//
// All arithmetic happens on the local representation of the anchor in the
// parser's location, so day, month and year boundaries (including DST
// shifts) follow that zone. Calendar computation is Gregorian throughout.
package datemath

import (
	"strconv"
	"strings"
	"time"
)

// Parser evaluates math expressions against a fixed "now".
//
// "Now" is pinned per instance: the first call that needs it fixes it to
// the current wall clock in the parser's location, and every later call
// sees the same value until SetNow. Evaluating "+0MILLIS" twice on one
// instance therefore yields equal results no matter how much wall-clock
// time passes in between. A Parser is not safe for concurrent use; the
// package-level Parse builds a fresh instance per call instead.
type Parser struct {
	loc    *time.Location
	now    time.Time
	nowSet bool
}

// New returns a Parser whose day and month boundaries follow loc. A nil loc
// means UTC.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc}
}

// Location returns the zone used for rounding and for results.
func (p *Parser) Location() *time.Location { return p.loc }

// SetNow pins this parser's "now".
func (p *Parser) SetNow(t time.Time) {
	p.now = t
	p.nowSet = true
}

// Now returns this parser's "now", pinning it to the current wall clock in
// the parser's location on first use.
func (p *Parser) Now() time.Time {
	if !p.nowSet {
		p.now = time.Now().In(p.loc)
		p.nowSet = true
	}
	return p.now
}

// Eval applies a math expression to this parser's "now" and returns the
// result expressed in the parser's location. Evaluation stops at the first
// invalid token; failures are *ParseError.
func (p *Parser) Eval(math string) (time.Time, error) {
	if math == "" {
		return p.Now().In(p.loc), nil
	}

	local := p.Now().In(p.loc)
	toks := tokenize(math)
	pos := 0
	for pos < len(toks) {
		if len(toks[pos]) != 1 {
			return time.Time{}, &ParseError{Kind: ErrMultiCharacterCommand, Token: toks[pos], Pos: pos}
		}
		command := toks[pos][0]
		pos++

		switch command {
		case '/':
			if len(toks) < pos+1 {
				return time.Time{}, &ParseError{Kind: ErrMissingUnit, Token: string(command), Pos: pos}
			}
			u, ok := LookupUnit(toks[pos])
			if !ok {
				return time.Time{}, &ParseError{Kind: ErrUnitNotRecognized, Token: toks[pos], Pos: pos}
			}
			local = round(local, u)
			pos++
		case '+', '-':
			if len(toks) < pos+2 {
				return time.Time{}, &ParseError{Kind: ErrMissingValueOrUnit, Token: string(command), Pos: pos}
			}
			n, err := strconv.Atoi(toks[pos])
			if err != nil {
				return time.Time{}, &ParseError{Kind: ErrNotANumber, Token: toks[pos], Pos: pos}
			}
			if command == '-' {
				n = -n
			}
			pos++
			u, ok := LookupUnit(toks[pos])
			if !ok {
				return time.Time{}, &ParseError{Kind: ErrUnitNotRecognized, Token: toks[pos], Pos: pos}
			}
			local = addUnit(local, n, u)
			pos++
		default:
			return time.Time{}, &ParseError{Kind: ErrUnrecognizedCommand, Token: string(command), Pos: pos - 1}
		}
	}
	return local.In(p.loc), nil
}

// Parse evaluates a full date math string: either "NOW" followed by an
// optional math expression, or an ISO-8601 UTC instant whose 'Z' is followed
// by an optional math expression. A non-nil now pins the anchor for the
// "NOW" form. Results are expressed in UTC.
//
// Every failure, including any *ParseError raised while evaluating the math
// suffix, is wrapped in a *BadRequestError carrying the raw input. Each call
// uses a fresh Parser, so Parse is safe for concurrent callers.
func Parse(now *time.Time, input string) (time.Time, error) {
	return ParseIn(now, input, nil)
}

// ParseIn is Parse with an explicit location for rounding and results. A nil
// loc means UTC.
func ParseIn(now *time.Time, input string, loc *time.Location) (time.Time, error) {
	p := New(loc)
	if now != nil {
		p.SetNow(*now)
	}

	var math string
	if strings.HasPrefix(input, "NOW") {
		math = input[len("NOW"):]
	} else {
		zz := strings.IndexByte(input, 'Z')
		if zz == -1 {
			return time.Time{}, &BadRequestError{Input: input}
		}
		math = input[zz+1:]
		anchor, err := parseInstant(input[:zz+1])
		if err != nil {
			return time.Time{}, &BadRequestError{Input: input, Err: err}
		}
		p.SetNow(anchor)
	}

	if math == "" {
		return p.Now().In(p.Location()), nil
	}
	t, err := p.Eval(math)
	if err != nil {
		return time.Time{}, &BadRequestError{Input: input, Err: err}
	}
	return t, nil
}

// instantLayouts make the absolute form lenient: fractional seconds are
// optional, and so are seconds entirely. The instant is always UTC.
var instantLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04Z",
}

func parseInstant(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
