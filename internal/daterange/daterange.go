// Package daterange parses the date-range mini-language used by list and
// clean filters into a half-open interval of local wall-clock instants.
//
// Grammar:
//
//	range   := date '-' date?  |  '-' date  |  date
//	date    := absolute | relative
//	absolute:= YYYY | YYYY/MM | YYYY/MM/DD
//	relative:= ['+']? unit+        unit := integer? ('d'|'w'|'m'|'y')
//
// A relative date subtracts its units from now (d=1 day, w=7 days,
// m=1 month, y=12 months). Without the '+' exact-mode prefix, the result is
// rounded down to the boundary of the last unit seen (week starts Monday).
package daterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date expression doesn't parse or names
// a nonexistent calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Range is a half-open interval [From, To). A nil bound is open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the interval: the lower bound is
// inclusive, the upper bound exclusive.
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

// IsZero reports whether both bounds are open.
func (r Range) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Parse parses a range expression, resolving relative dates against now.
func Parse(input string, now time.Time) (Range, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrInvalidDate)
	}

	parts := strings.Split(input, "-")
	switch len(parts) {
	case 1:
		from, to, err := parseDate(parts[0], now)
		if err != nil {
			return Range{}, err
		}
		return Range{From: &from, To: &to}, nil
	case 2:
		var result Range
		if parts[0] != "" {
			from, _, err := parseDate(parts[0], now)
			if err != nil {
				return Range{}, err
			}
			result.From = &from
		}
		if parts[1] != "" {
			_, to, err := parseDate(parts[1], now)
			if err != nil {
				return Range{}, err
			}
			result.To = &to
		}
		if result.IsZero() {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
		}
		return result, nil
	default:
		return Range{}, fmt.Errorf("%w: %q has too many dashes", ErrInvalidDate, input)
	}
}

// parseDate resolves a single date expression to its start and end instants,
// where end is the start of the next unit at the date's granularity.
func parseDate(expr string, now time.Time) (from, to time.Time, err error) {
	if strings.ContainsAny(expr, "dwmy+") {
		return parseRelative(expr, now)
	}
	return parseAbsolute(expr)
}

func parseAbsolute(expr string) (from, to time.Time, err error) {
	fields := strings.Split(expr, "/")

	numbers := make([]int, 0, 3)
	for _, field := range fields {
		n, convErr := strconv.Atoi(field)
		if convErr != nil {
			return from, to, fmt.Errorf("%w: %q", ErrInvalidDate, expr)
		}
		numbers = append(numbers, n)
	}

	loc := time.Local
	switch len(numbers) {
	case 1:
		year := numbers[0]
		if len(fields[0]) != 4 {
			return from, to, fmt.Errorf("%w: year must have four digits in %q", ErrInvalidDate, expr)
		}
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		to = from.AddDate(1, 0, 0)
	case 2:
		year, month := numbers[0], numbers[1]
		if month < 1 || month > 12 {
			return from, to, fmt.Errorf("%w: month out of range in %q", ErrInvalidDate, expr)
		}
		from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		to = from.AddDate(0, 1, 0)
	case 3:
		year, month, day := numbers[0], numbers[1], numbers[2]
		if month < 1 || month > 12 {
			return from, to, fmt.Errorf("%w: month out of range in %q", ErrInvalidDate, expr)
		}
		from = time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2);
		// reject anything that did not round-trip.
		if from.Day() != day || from.Month() != time.Month(month) || from.Year() != year {
			return from, to, fmt.Errorf("%w: no such day %q", ErrInvalidDate, expr)
		}
		to = from.AddDate(0, 0, 1)
	default:
		return from, to, fmt.Errorf("%w: %q", ErrInvalidDate, expr)
	}
	return from, to, nil
}

type unit byte

const (
	unitDay   unit = 'd'
	unitWeek  unit = 'w'
	unitMonth unit = 'm'
	unitYear  unit = 'y'
)

func parseRelative(expr string, now time.Time) (from, to time.Time, err error) {
	rest := expr
	exact := strings.HasPrefix(rest, "+")
	if exact {
		rest = rest[1:]
	}
	if rest == "" {
		return from, to, fmt.Errorf("%w: %q", ErrInvalidDate, expr)
	}

	var days, months int
	var lastUnit unit
	seen := false

	for len(rest) > 0 {
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		// A unit with no integer means zero of that unit.
		quantity := 0
		if digits > 0 {
			quantity, err = strconv.Atoi(rest[:digits])
			if err != nil {
				return from, to, fmt.Errorf("%w: %q", ErrInvalidDate, expr)
			}
		}
		if digits == len(rest) {
			return from, to, fmt.Errorf("%w: trailing number in %q", ErrInvalidDate, expr)
		}

		switch u := unit(rest[digits]); u {
		case unitDay:
			days += quantity
			lastUnit = u
		case unitWeek:
			days += 7 * quantity
			lastUnit = u
		case unitMonth:
			months += quantity
			lastUnit = u
		case unitYear:
			months += 12 * quantity
			lastUnit = u
		default:
			return from, to, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidDate, string(rest[digits]), expr)
		}
		seen = true
		rest = rest[digits+1:]
	}
	if !seen {
		return from, to, fmt.Errorf("%w: %q", ErrInvalidDate, expr)
	}

	instant := now.AddDate(0, -months, -days)

	if exact {
		// Exact mode skips rounding; a single exact date yields an empty
		// half-open interval, preserved intentionally.
		return instant, instant, nil
	}

	from = roundDown(instant, lastUnit)
	to = advance(from, lastUnit)
	return from, to, nil
}

// roundDown truncates the instant to the start of the given unit, with
// weeks starting on Monday.
func roundDown(t time.Time, u unit) time.Time {
	year, month, day := t.Date()
	switch u {
	case unitDay:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	case unitWeek:
		start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
		offset := (int(start.Weekday()) + 6) % 7
		return start.AddDate(0, 0, -offset)
	case unitMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	case unitYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// advance moves the instant forward by one of the given unit.
func advance(t time.Time, u unit) time.Time {
	switch u {
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	case unitYear:
		return t.AddDate(1, 0, 0)
	}
	return t
}
