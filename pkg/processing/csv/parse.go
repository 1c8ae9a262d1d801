package csv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IntOrNil parses an optional integer column. Blank or unparsable input
// resolves to nil, never to an error.
func IntOrNil(arg string) *int {
	s := strings.TrimSpace(arg)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// DecimalOrNil parses an optional decimal column, tolerant like IntOrNil.
func DecimalOrNil(arg string) *decimal.Decimal {
	s := strings.TrimSpace(arg)
	if s == "" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &v
}

// ParseLapTime converts "mm:ss.SSS" or "h:mm:ss.SSS" to seconds.
func ParseLapTime(arg string) (decimal.Decimal, error) {
	ret, err := parseColonTime(arg, 3)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedLapTime, arg)
	}
	return ret, nil
}

// ParseLargeSectorTime converts "mm:ss.SSS" to seconds. Sector sheets
// never carry an hour component.
func ParseLargeSectorTime(arg string) (decimal.Decimal, error) {
	ret, err := parseColonTime(arg, 2)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedSectorTime, arg)
	}
	return ret, nil
}

// ParseElapsedSeconds converts a session-elapsed reading ("m:ss.SSS" or
// "h:mm:ss.SSS") to high-precision seconds.
func ParseElapsedSeconds(arg string) (decimal.Decimal, error) {
	ret, err := parseColonTime(arg, 3)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedElapsedTime, arg)
	}
	return ret, nil
}

// maxParts limits the accepted shapes: 2 allows mm:ss only, 3 also
// allows h:mm:ss
func parseColonTime(arg string, maxParts int) (decimal.Decimal, error) {
	parts := strings.Split(strings.TrimSpace(arg), ":")
	if len(parts) < 2 || len(parts) > maxParts {
		return decimal.Zero, fmt.Errorf("unexpected number of parts: %d", len(parts))
	}
	seconds, err := decimal.NewFromString(parts[len(parts)-1])
	if err != nil {
		return decimal.Zero, err
	}
	multiplier := int64(60)
	for i := len(parts) - 2; i >= 0; i-- {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return decimal.Zero, err
		}
		seconds = seconds.Add(decimal.NewFromInt(int64(v) * multiplier))
		multiplier *= 60
	}
	return seconds, nil
}

// ReconstructTimestamp turns a wall-clock reading into an absolute
// timestamp. The sheet's time-of-day column carries no date, and
// overnight races cross midnight, so the calendar date (and for
// "mm:ss.SSS" readings the hour) is taken from sessionStart plus the
// row's elapsed seconds.
func ReconstructTimestamp(
	timeOfDay string,
	elapsed decimal.Decimal,
	sessionStart time.Time,
) (time.Time, error) {
	ref := sessionStart.Add(
		time.Duration(elapsed.Mul(decimal.NewFromInt(int64(time.Second))).IntPart()))

	parts := strings.Split(strings.TrimSpace(timeOfDay), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, timeOfDay)
	}
	hour := ref.Hour()
	if len(parts) == 3 {
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, timeOfDay)
		}
		hour = v
		parts = parts[1:]
	}
	minute, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, timeOfDay)
	}
	seconds, err := decimal.NewFromString(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, timeOfDay)
	}
	sec := seconds.IntPart()
	nanos := seconds.Sub(decimal.NewFromInt(sec)).
		Mul(decimal.NewFromInt(int64(time.Second))).IntPart()

	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		hour, minute, int(sec), int(nanos), sessionStart.Location()), nil
}
